package seed

import (
	"context"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
)

// Repository defines the storage contract for seeding.
type Repository interface {
	Count(ctx context.Context) (int, error)
	Upsert(ctx context.Context, models []*model.Model) error
}

// Invalidator drops derived data, such as the cached filter listing, after
// the catalogue changed.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
