// Package memory is an in-process catalogue store. It evaluates predicates
// directly and is the default for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

var _ db.Store = (*Store)(nil)

// Store keeps models in insertion order.
type Store struct {
	mu     sync.RWMutex
	models []*model.Model
	byID   map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Find evaluates q over a snapshot of the stored models.
func (s *Store) Find(_ context.Context, q *db.Query) ([]*model.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return db.Apply(s.models, q), nil
}

// FindOne returns the first model matching p.
func (s *Store) FindOne(ctx context.Context, p predicate.Predicate) (*model.Model, error) {
	found, err := s.Find(ctx, &db.Query{Predicate: p, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return found[0], nil
}

// UpsertMany replaces models with a known id in place and appends the rest.
func (s *Store) UpsertMany(_ context.Context, models []*model.Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range models {
		cp := *m
		if i, ok := s.byID[m.ID]; ok {
			s.models[i] = &cp
			continue
		}
		s.byID[m.ID] = len(s.models)
		s.models = append(s.models, &cp)
	}
	return nil
}

// Count returns the number of stored models.
func (s *Store) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.models), nil
}
