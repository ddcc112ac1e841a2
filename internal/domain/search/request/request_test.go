package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/facet"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/order"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

func TestNewList_Defaults(t *testing.T) {
	l, err := NewList(facet.Bag{}, nil, order.Order{}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Order() != order.Default {
		t.Errorf("Order() = %+v", l.Order())
	}
	if l.IsCompare() {
		t.Error("IsCompare() = true")
	}
	fc, ok := l.Predicate().(predicate.FacetConjunction)
	if !ok || !fc.MatchesAll() {
		t.Errorf("Predicate() = %#v", l.Predicate())
	}
}

func TestNewList_Filters(t *testing.T) {
	bag := facet.Normalize(facet.Raw{model.FieldTask: {"Chat"}})
	l, err := NewList(bag, nil, order.Default, 20, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fc := l.Predicate().(predicate.FacetConjunction)
	if len(fc.Clauses) != 1 || fc.Clauses[0].Field != model.FieldTask {
		t.Errorf("clauses = %+v", fc.Clauses)
	}
	if l.Limit() != 20 || l.Offset() != 40 {
		t.Errorf("limit/offset = %d/%d", l.Limit(), l.Offset())
	}
}

func TestNewList_CompareIgnoresFilters(t *testing.T) {
	bag := facet.Normalize(facet.Raw{model.FieldTask: {"Chat"}})
	l, err := NewList(bag, []string{"GPT-4o", " Whisper ", "GPT-4o"}, order.Default, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.IsCompare() || !l.Filters().IsEmpty() {
		t.Fatalf("compare = %v, filters = %v", l.IsCompare(), l.Filters().Keys())
	}
	fc := l.Predicate().(predicate.FacetConjunction)
	if len(fc.Clauses) != 1 || fc.Clauses[0].Field != model.FieldModel {
		t.Fatalf("clauses = %+v", fc.Clauses)
	}
	if got := fc.Clauses[0].Values; len(got) != 2 || got[1] != "Whisper" {
		t.Errorf("values = %v", got)
	}
}

func TestNewList_Errors(t *testing.T) {
	tests := []struct {
		name          string
		names         []string
		limit, offset int
		want          error
	}{
		{"negative limit", nil, -1, 0, domain.ErrInvalidQuery},
		{"limit too large", nil, MaxLimit + 1, 0, domain.ErrInvalidQuery},
		{"negative offset", nil, 10, -5, domain.ErrInvalidQuery},
		{"too many names", []string{"a", "b", "c", "d"}, 0, 0, domain.ErrTooManySlugs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewList(facet.Bag{}, tt.names, order.Default, tt.limit, tt.offset)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewTerm(t *testing.T) {
	got, err := NewTerm("  llama ")
	if err != nil || got != "llama" {
		t.Errorf("NewTerm = %q, %v", got, err)
	}
	if _, err := NewTerm("   "); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("blank: err = %v", err)
	}
	if _, err := NewTerm(strings.Repeat("x", MaxQueryLength+1)); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("long: err = %v", err)
	}
}
