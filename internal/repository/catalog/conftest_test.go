package catalog

import (
	"context"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	findFn    func(ctx context.Context, q *db.Query) ([]*model.Model, error)
	findOneFn func(ctx context.Context, p predicate.Predicate) (*model.Model, error)
	upsertFn  func(ctx context.Context, models []*model.Model) error
	countFn   func(ctx context.Context) (int, error)
}

func (m *mockStore) Find(ctx context.Context, q *db.Query) ([]*model.Model, error) {
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) FindOne(ctx context.Context, p predicate.Predicate) (*model.Model, error) {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, p)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) UpsertMany(ctx context.Context, models []*model.Model) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, models)
	}
	return nil
}

func (m *mockStore) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}
