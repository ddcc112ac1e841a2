package facet

import (
	"slices"
	"testing"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
)

func TestRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name  string
		field string
		ok    bool
	}{
		{"Task", model.FieldTask, true},
		{"task", model.FieldTask, true},
		{"COUNTRY", model.FieldCountry, true},
		{"Country (from Organization)", model.FieldCountry, true},
		{"organizations", model.FieldOrganization, true},
		{"Model", model.FieldModel, true},
		{"Color", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := r.Lookup(tt.name)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && f.Field != tt.field {
				t.Errorf("field = %q, want %q", f.Field, tt.field)
			}
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := DefaultRegistry()
	bag := Normalize(Raw{
		"task":    {"Chat", "Vision"},
		"Task":    {"Vision", "Audio"},
		"Country": {"France"},
		"Color":   {"Blue"},
	})

	got := r.Resolve(bag)

	if !slices.Equal(got.Keys(), []string{model.FieldCountry, model.FieldTask}) {
		t.Fatalf("keys = %v", got.Keys())
	}
	if vals := got.Values(model.FieldTask); !slices.Equal(vals, []string{"Vision", "Audio", "Chat"}) {
		t.Errorf("Task = %v", vals)
	}
}

func TestRegistry_Facets(t *testing.T) {
	names := make([]string, 0)
	for _, f := range DefaultRegistry().Facets() {
		names = append(names, f.Name)
	}
	want := []string{Task, Domain, Organization, Country, Model}
	if !slices.Equal(names, want) {
		t.Errorf("facets = %v, want %v", names, want)
	}
}
