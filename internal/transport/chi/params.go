package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/facet"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/order"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/request"
)

// Listing parameters that are not facets.
const (
	paramSlugs  = "slugs"
	paramSort   = "sort"
	paramOrder  = "order"
	paramLimit  = "limit"
	paramOffset = "offset"
	paramQuery  = "query"
)

var reservedParams = map[string]struct{}{
	paramSlugs:  {},
	paramSort:   {},
	paramOrder:  {},
	paramLimit:  {},
	paramOffset: {},
}

// Request body limits.
const (
	maxBodyBytes = 1 << 20
	maxSeedBytes = 64 << 20
)

// ListRequest is the body of POST /api/models.
type ListRequest struct {
	Filters facet.Raw    `json:"filters,omitempty"`
	Slugs   facet.Values `json:"slugs,omitempty"`
	Sort    string       `json:"sort,omitempty"`
	Order   string       `json:"order,omitempty"`
	Limit   *int         `json:"limit,omitempty"`
	Offset  int          `json:"offset,omitempty"`
}

// listFromQuery reads a listing request from a query string. Every parameter
// that is not reserved is a facet; comma-joined values are split.
func (s *Server) listFromQuery(q url.Values) (request.List, error) {
	raw, reserved := splitQuery(q)
	bag := s.registry.Resolve(facet.NormalizeWith(raw, facet.NormalizeOptions{SplitComma: true}))

	var slugs []string
	for _, v := range reserved[paramSlugs] {
		slugs = append(slugs, strings.Split(v, ",")...)
	}

	limit := s.defaultLimit
	if v := reserved.Get(paramLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return request.List{}, domain.NewQueryError(paramLimit, "must be an integer")
		}
		limit = n
	}
	offset := 0
	if v := reserved.Get(paramOffset); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return request.List{}, domain.NewQueryError(paramOffset, "must be an integer")
		}
		offset = n
	}
	return s.newList(bag, facet.Clean(slugs), reserved.Get(paramSort), reserved.Get(paramOrder), limit, offset)
}

// splitQuery separates facet parameters from reserved ones. Reserved names
// match in any case and are returned under their lower-case key.
func splitQuery(q url.Values) (facet.Raw, url.Values) {
	raw := make(facet.Raw, len(q))
	reserved := url.Values{}
	for _, k := range slices.Sorted(maps.Keys(q)) {
		lk := strings.ToLower(k)
		if _, ok := reservedParams[lk]; ok {
			reserved[lk] = append(reserved[lk], q[k]...)
			continue
		}
		raw[k] = q[k]
	}
	return raw, reserved
}

// pathParam returns a decoded URL parameter. chi matches against the escaped
// path when the request carries one, so its params are still escaped then.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// listFromBody reads a listing request from a JSON body. Values are not split
// on commas.
func (s *Server) listFromBody(body io.Reader) (request.List, error) {
	var req ListRequest
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return request.List{}, domain.NewQueryError("body", "must be a JSON object")
	}
	limit := s.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	bag := s.registry.Resolve(facet.Normalize(req.Filters))
	return s.newList(bag, facet.Clean(req.Slugs), req.Sort, req.Order, limit, req.Offset)
}

func (s *Server) newList(bag facet.Bag, slugs []string, sortBy, dir string, limit, offset int) (request.List, error) {
	if s.maxLimit > 0 && limit > s.maxLimit {
		return request.List{}, domain.NewQueryError(paramLimit, fmt.Sprintf("must not exceed %d", s.maxLimit))
	}
	o, err := order.Parse(sortBy, dir)
	if err != nil {
		return request.List{}, err //nolint:wrapcheck // already a domain error
	}
	l, err := request.NewList(bag, slugs, o, limit, offset)
	if err != nil {
		return request.List{}, err //nolint:wrapcheck // already a domain error
	}
	return l, nil
}

// searchTerm reads the search term. "q" is accepted as a shorthand.
func searchTerm(r *http.Request) string {
	q := r.URL.Query()
	if v := q.Get(paramQuery); v != "" {
		return v
	}
	return q.Get("q")
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
