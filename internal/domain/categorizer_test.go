package domain

import (
	"context"
	"errors"
	"slices"
	"testing"
)

type stubCategorizer struct {
	labels []string
	err    error
	gotVoc []string
}

func (s *stubCategorizer) Categorize(_ context.Context, _, _ string, vocabulary []string) ([]string, error) {
	s.gotVoc = vocabulary
	return s.labels, s.err
}

func TestVocabularyCategorizer_FiltersToVocabulary(t *testing.T) {
	inner := &stubCategorizer{labels: []string{"chat", "Teleportation", " Vision ", "CHAT"}}
	c := NewVocabularyCategorizer(inner)

	got, err := c.Categorize(context.Background(), "GPT-4o", "abstract", []string{"Chat", "Vision", "Audio"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"Chat", "Vision"}) {
		t.Errorf("got %v", got)
	}
	if len(inner.gotVoc) != 3 {
		t.Errorf("vocabulary not forwarded: %v", inner.gotVoc)
	}
}

func TestVocabularyCategorizer_EmptyVocabulary(t *testing.T) {
	inner := &stubCategorizer{labels: []string{" Chat", "", "Chat", "Vision"}}
	got, err := NewVocabularyCategorizer(inner).Categorize(context.Background(), "m", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"Chat", "Vision"}) {
		t.Errorf("got %v", got)
	}
}

func TestVocabularyCategorizer_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	_, err := NewVocabularyCategorizer(&stubCategorizer{err: innerErr}).
		Categorize(context.Background(), "m", "", []string{"Chat"})
	if !errors.Is(err, innerErr) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

type healthyCategorizer struct {
	stubCategorizer
	err error
}

func (h *healthyCategorizer) HealthCheck(context.Context) error { return h.err }

func TestVocabularyCategorizer_HealthCheck(t *testing.T) {
	if err := NewVocabularyCategorizer(&stubCategorizer{}).HealthCheck(context.Background()); err != nil {
		t.Errorf("non-checker inner: %v", err)
	}
	down := errors.New("down")
	if err := NewVocabularyCategorizer(&healthyCategorizer{err: down}).HealthCheck(context.Background()); !errors.Is(err, down) {
		t.Errorf("got %v", err)
	}
}
