package facetcache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/result"
)

type mockSource struct {
	listing result.Listing
	err     error
	calls   int
}

func (m *mockSource) Listing(_ context.Context) (result.Listing, error) {
	m.calls++
	return m.listing, m.err
}

type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, key string) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func newTestCache(t *testing.T, src Source, ms *mockStore) (*CachedListing, *prometheus.CounterVec) {
	t.Helper()
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_facet_cache_total"}, []string{"result"})
	return New(src, ms, time.Minute, total, zap.NewNop()), total
}
