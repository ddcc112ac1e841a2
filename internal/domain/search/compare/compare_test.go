package compare

import (
	"errors"
	"slices"
	"testing"

	"github.com/waqarniyazi/aiportalx/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"GPT-4o-vs-Claude%203", []string{"GPT-4o", "Claude 3"}},
		{"Meta Llama 3-vs-Mistral 7B-vs-Gemma", []string{"Meta Llama 3", "Mistral 7B", "Gemma"}},
		{"GPT-4o", []string{"GPT-4o"}},
		{"GPT-4o-vs--vs-GPT-4o", []string{"GPT-4o"}},
		{"bad%zzescape-vs-x", []string{"bad%zzescape", "x"}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(" -vs- "); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("empty: err = %v", err)
	}
	if _, err := Parse("a-vs-b-vs-c-vs-d"); !errors.Is(err, domain.ErrTooManySlugs) {
		t.Errorf("too many: err = %v", err)
	}
}

func TestJoin_RoundTrip(t *testing.T) {
	names := []string{"Claude 3", "GPT-4o"}
	got, err := Parse(Join(names))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, names) {
		t.Errorf("round trip = %q", got)
	}
}
