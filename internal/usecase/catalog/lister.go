package catalog

import (
	"context"
	"fmt"

	"github.com/waqarniyazi/aiportalx/internal/domain/search/result"
)

// Lister computes the filter listing by flattening every stored model.
type Lister struct {
	repo Repository
}

// NewLister creates a Lister.
func NewLister(repo Repository) *Lister {
	return &Lister{repo: repo}
}

// Listing implements ListingProvider.
func (l *Lister) Listing(ctx context.Context) (result.Listing, error) {
	models, err := l.repo.Find(ctx, nil, 0)
	if err != nil {
		return result.Listing{}, fmt.Errorf("load models: %w", err)
	}
	return result.NewListing(models), nil
}
