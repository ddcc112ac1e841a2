package db

import (
	"context"
	"fmt"
	"time"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// Store is the catalogue database facade. Every driver implements it; the
// composition root owns its lifecycle.
type Store interface {
	Pinger
	ModelStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Query selects models. Limit 0 returns every match. Drivers do not order
// results beyond their natural storage order.
type Query struct {
	Predicate predicate.Predicate
	Limit     int
}

// ModelStore reads and writes model documents.
type ModelStore interface {
	Find(ctx context.Context, q *Query) ([]*model.Model, error)
	// FindOne returns the first match or ErrKeyNotFound.
	FindOne(ctx context.Context, p predicate.Predicate) (*model.Model, error)
	// UpsertMany inserts or replaces models by id.
	UpsertMany(ctx context.Context, models []*model.Model) error
	Count(ctx context.Context) (int, error)
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// WaitForReady polls p until it answers or timeout expires.
func WaitForReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
