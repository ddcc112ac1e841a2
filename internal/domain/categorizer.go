package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
)

// Categorizer assigns task labels to a model from its name and abstract.
// Implementations pick labels from vocabulary when it is non-empty.
type Categorizer interface {
	Categorize(ctx context.Context, name, abstract string, vocabulary []string) ([]string, error)
}

// HealthChecker verifies categorizer provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// VocabularyCategorizer is a domain decorator that keeps only the labels
// present in the vocabulary, spelled the way the vocabulary spells them.
type VocabularyCategorizer struct {
	inner Categorizer
}

// NewVocabularyCategorizer wraps inner.
func NewVocabularyCategorizer(inner Categorizer) *VocabularyCategorizer {
	return &VocabularyCategorizer{inner: inner}
}

// Categorize delegates to inner and filters its answer.
func (c *VocabularyCategorizer) Categorize(
	ctx context.Context, name, abstract string, vocabulary []string,
) ([]string, error) {
	labels, err := c.inner.Categorize(ctx, name, abstract, vocabulary)
	if err != nil {
		return nil, fmt.Errorf("vocabulary categorize: %w", err)
	}
	if len(vocabulary) == 0 {
		return dedupTrimmed(labels), nil
	}
	canonical := make(map[string]string, len(vocabulary))
	for _, v := range vocabulary {
		canonical[match.Fold(strings.TrimSpace(v))] = v
	}
	var out []string
	seen := make(map[string]struct{})
	for _, l := range labels {
		v, ok := canonical[match.Fold(strings.TrimSpace(l))]
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// HealthCheck forwards to inner when it supports health checks.
func (c *VocabularyCategorizer) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

func dedupTrimmed(labels []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
