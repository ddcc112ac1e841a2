package request

import (
	"strings"
	"unicode/utf8"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/compare"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/facet"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/order"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// Request parameter limits.
const (
	// MaxQueryLength is the maximum allowed search term length in characters.
	MaxQueryLength = 256
	// SearchLimit caps name search and the models bucket of global search.
	SearchLimit = 10
	MaxLimit    = 500
)

// List is a validated catalogue listing request.
type List struct {
	filters facet.Bag
	names   []string
	order   order.Order
	limit   int
	offset  int
}

// NewList validates a listing request. filters must already be keyed by
// record field. When names is non-empty the request is a comparison lookup
// and filters are ignored. limit 0 means no limit.
func NewList(filters facet.Bag, names []string, o order.Order, limit, offset int) (List, error) {
	if limit < 0 || limit > MaxLimit {
		return List{}, domain.NewQueryError("limit", "must be between 0 and 500")
	}
	if offset < 0 {
		return List{}, domain.NewQueryError("offset", "must not be negative")
	}
	if o.Field == "" {
		o = order.Default
	}
	l := List{filters: filters, order: o, limit: limit, offset: offset}
	if len(names) > 0 {
		cleaned, err := compare.Names(names)
		if err != nil {
			return List{}, err //nolint:wrapcheck // already a domain error
		}
		l.names = cleaned
		l.filters = facet.Bag{}
	}
	return l, nil
}

// Filters returns the facet bag. It is empty for comparison lookups.
func (l List) Filters() facet.Bag { return l.filters }

// Names returns the compared model names, nil for a filtered listing.
func (l List) Names() []string { return l.names }

// IsCompare reports whether the request looks models up by name.
func (l List) IsCompare() bool { return len(l.names) > 0 }

// Order returns the requested order.
func (l List) Order() order.Order { return l.order }

// Limit returns the page size, 0 for unlimited.
func (l List) Limit() int { return l.limit }

// Offset returns the number of records to skip.
func (l List) Offset() int { return l.offset }

// Predicate builds the selection condition of the request.
func (l List) Predicate() predicate.Predicate {
	if l.IsCompare() {
		return predicate.FacetConjunction{Clauses: []predicate.Clause{
			{Field: model.FieldModel, Values: l.names},
		}}
	}
	return predicate.Build(l.filters, nil)
}

// NewTerm validates a free-text search term: it is trimmed, required and
// bounded by MaxQueryLength.
func NewTerm(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", domain.NewQueryError("query", "is required")
	}
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return "", domain.NewQueryError("query", "is too long")
	}
	return q, nil
}
