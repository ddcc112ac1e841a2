package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/waqarniyazi/aiportalx/internal/domain/search/compare"
	"github.com/waqarniyazi/aiportalx/internal/version"
)

const defaultTimeout = 30 * time.Second

// Client calls the aiportalx HTTP API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	apiKey    string
	userAgent string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithAPIKey sets the bearer token sent to admin routes.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: "aiportalx-client/" + version.Version,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Models lists models. Requests whose values contain commas are sent as a
// JSON body so the server does not split them.
func (c *Client) Models(ctx context.Context, opts ListOptions) (*Page, error) {
	var page Page
	if needsBody(opts) {
		if err := c.do(ctx, http.MethodPost, "/api/models", nil, listBody(opts), &page); err != nil {
			return nil, err
		}
		return &page, nil
	}
	if err := c.do(ctx, http.MethodGet, "/api/models", listQuery(opts), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Model looks a model up by organization and model slug.
func (c *Client) Model(ctx context.Context, organization, name string) (*Model, error) {
	var m Model
	path := "/api/models/" + url.PathEscape(organization) + "/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Compare fetches up to three models by name, in the order given.
func (c *Client) Compare(ctx context.Context, names ...string) ([]*Model, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/api/compare/"+compare.Join(names), nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Models, nil
}

// Filters returns the distinct values of every facet.
func (c *Client) Filters(ctx context.Context) (*Filters, error) {
	var f Filters
	if err := c.do(ctx, http.MethodGet, "/api/filters", nil, nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Search returns models whose name contains query.
func (c *Client) Search(ctx context.Context, query string) ([]*Model, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/api/search", url.Values{"query": {query}}, nil, &page); err != nil {
		return nil, err
	}
	return page.Models, nil
}

// GlobalSearch looks query up in names and every facet.
func (c *Client) GlobalSearch(ctx context.Context, query string) (*SearchGroups, error) {
	var g SearchGroups
	if err := c.do(ctx, http.MethodGet, "/api/globalsearch", url.Values{"query": {query}}, nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Seed uploads a JSON array of model documents. force seeds a populated
// catalogue.
func (c *Client) Seed(ctx context.Context, dataset io.Reader, force bool) (*SeedReport, error) {
	q := url.Values{}
	if force {
		q.Set("force", "true")
	}
	var rep SeedReport
	if err := c.do(ctx, http.MethodPost, "/api/admin/seed", q, dataset, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Health returns the server health. A degraded or failing server answers
// 503 with a body; that is not an error here.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var h HealthStatus
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, &h)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable && h.Status != "" {
		return &h, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("aiportalx: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("aiportalx: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("aiportalx: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		// Health answers 503 with a regular body.
		if out != nil {
			_ = json.Unmarshal(data, out)
		}
		return apiErr
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("aiportalx: decode response: %w", err)
	}
	return nil
}

func needsBody(opts ListOptions) bool {
	for _, vals := range opts.Filters {
		for _, v := range vals {
			if strings.Contains(v, ",") {
				return true
			}
		}
	}
	for _, s := range opts.Slugs {
		if strings.Contains(s, ",") {
			return true
		}
	}
	return false
}

func listQuery(opts ListOptions) url.Values {
	q := url.Values{}
	for k, vals := range opts.Filters {
		for _, v := range vals {
			q.Add(k, v)
		}
	}
	if len(opts.Slugs) > 0 {
		q.Set("slugs", strings.Join(opts.Slugs, ","))
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	return q
}

func listBody(opts ListOptions) io.Reader {
	body := struct {
		Filters map[string][]string `json:"filters,omitempty"`
		Slugs   []string            `json:"slugs,omitempty"`
		Sort    string              `json:"sort,omitempty"`
		Order   string              `json:"order,omitempty"`
		Limit   int                 `json:"limit,omitempty"`
		Offset  int                 `json:"offset,omitempty"`
	}{opts.Filters, opts.Slugs, opts.Sort, opts.Order, opts.Limit, opts.Offset}
	data, _ := json.Marshal(body) //nolint:errchkjson // plain strings and ints
	return bytes.NewReader(data)
}
