package search

import (
	"context"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Find(ctx context.Context, p predicate.Predicate, limit int) ([]*model.Model, error)
}
