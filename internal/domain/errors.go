package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals a request the catalogue cannot answer as asked.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrTooManySlugs signals a compare request over the model limit.
	ErrTooManySlugs = errors.New("too many models to compare")
	// ErrInvalidDataset signals a seed payload that cannot be decoded.
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrCategorizerUnavailable signals a task categorizer failure.
	ErrCategorizerUnavailable = errors.New("categorizer unavailable")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)

// QueryError wraps ErrInvalidQuery with the offending parameter.
type QueryError struct {
	Param  string
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidQuery.Error(), e.Param, e.Reason)
}

func (e *QueryError) Unwrap() error { return ErrInvalidQuery }

// NewQueryError creates an invalid query error for a parameter.
func NewQueryError(param, reason string) error {
	return &QueryError{Param: param, Reason: reason}
}
