// Package compare parses side-by-side comparison requests.
package compare

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/waqarniyazi/aiportalx/internal/domain"
)

// MaxModels is the largest number of models one comparison may hold.
const MaxModels = 3

// Separator joins model names in a comparison path segment.
const Separator = "-vs-"

// Parse splits a path segment such as "GPT-4o-vs-Claude%203" into model
// names. Each part is URL-decoded and trimmed; empty parts and repeats are
// dropped.
func Parse(segment string) ([]string, error) {
	return Names(strings.Split(segment, Separator))
}

// Names cleans a list of requested model names and enforces MaxModels.
func Names(parts []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range parts {
		if decoded, err := url.PathUnescape(p); err == nil {
			p = decoded
		}
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, domain.NewQueryError("slugs", "must name at least one model")
	}
	if len(out) > MaxModels {
		return nil, fmt.Errorf("%w: got %d, max %d", domain.ErrTooManySlugs, len(out), MaxModels)
	}
	return out, nil
}

// Join builds the path segment for names.
func Join(names []string) string {
	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = url.PathEscape(n)
	}
	return strings.Join(escaped, Separator)
}
