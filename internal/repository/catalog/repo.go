package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// store is the consumer interface for model documents (ISP).
type store interface {
	Find(ctx context.Context, q *db.Query) ([]*model.Model, error)
	FindOne(ctx context.Context, p predicate.Predicate) (*model.Model, error)
	UpsertMany(ctx context.Context, models []*model.Model) error
	Count(ctx context.Context) (int, error)
}

// Repo implements the catalogue repositories of the catalog, search and
// seed use cases on top of any db.Store driver.
type Repo struct {
	store   store
	queries *prometheus.CounterVec
}

// New creates a catalogue repository.
// queries is a counter vec with label "kind", nil disables counting.
func New(s store, queries *prometheus.CounterVec) *Repo {
	return &Repo{store: s, queries: queries}
}

// Find returns the models matching p in storage order. limit 0 means all.
func (r *Repo) Find(ctx context.Context, p predicate.Predicate, limit int) ([]*model.Model, error) {
	r.count(p)
	models, err := r.store.Find(ctx, &db.Query{Predicate: p, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("find models: %w", err)
	}
	return models, nil
}

// Get returns the first model matching p or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, p predicate.Predicate) (*model.Model, error) {
	r.count(p)
	m, err := r.store.FindOne(ctx, p)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get model: %w", err)
	}
	return m, nil
}

// Upsert writes models by id.
func (r *Repo) Upsert(ctx context.Context, models []*model.Model) error {
	if err := r.store.UpsertMany(ctx, models); err != nil {
		return fmt.Errorf("upsert %d models: %w", len(models), err)
	}
	return nil
}

// Count returns the number of stored models.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count models: %w", err)
	}
	return n, nil
}

func (r *Repo) count(p predicate.Predicate) {
	if r.queries == nil {
		return
	}
	kind := predicate.KindFacets
	if p != nil {
		kind = p.Kind()
	}
	r.queries.WithLabelValues(string(kind)).Inc()
}
