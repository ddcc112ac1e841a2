package catalog

import (
	"context"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/result"
)

// Repository defines the storage contract for catalogue reads.
type Repository interface {
	// Find returns matches in storage order; limit 0 means all.
	Find(ctx context.Context, p predicate.Predicate, limit int) ([]*model.Model, error)
	// Get returns the first match or domain.ErrNotFound.
	Get(ctx context.Context, p predicate.Predicate) (*model.Model, error)
}

// ListingProvider returns the distinct facet values of the catalogue.
type ListingProvider interface {
	Listing(ctx context.Context) (result.Listing, error)
}
