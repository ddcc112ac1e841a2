package client

import (
	"fmt"

	"github.com/waqarniyazi/aiportalx/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrTooManySlugs           = domain.ErrTooManySlugs
	ErrInvalidDataset         = domain.ErrInvalidDataset
	ErrCategorizerUnavailable = domain.ErrCategorizerUnavailable
	ErrNotImplemented         = domain.ErrNotImplemented
)

var codeSentinels = map[string]error{
	"not_found":               ErrNotFound,
	"invalid_query":           ErrInvalidQuery,
	"too_many_slugs":          ErrTooManySlugs,
	"invalid_dataset":         ErrInvalidDataset,
	"categorizer_unavailable": ErrCategorizerUnavailable,
	"not_implemented":         ErrNotImplemented,
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("aiportalx: http %d", e.StatusCode)
	}
	return fmt.Sprintf("aiportalx: http %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the error code onto a sentinel so errors.Is works.
func (e *APIError) Unwrap() error {
	return codeSentinels[e.Code]
}
