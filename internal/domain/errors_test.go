package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestQueryError(t *testing.T) {
	err := NewQueryError("query", "is required")

	if !errors.Is(err, ErrInvalidQuery) {
		t.Error("expected errors.Is(err, ErrInvalidQuery)")
	}
	if got := err.Error(); got != "invalid query: query is required" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := fmt.Errorf("search: %w", err)
	var qe *QueryError
	if !errors.As(wrapped, &qe) {
		t.Fatal("expected errors.As to find QueryError")
	}
	if qe.Param != "query" {
		t.Errorf("Param = %q", qe.Param)
	}
}
