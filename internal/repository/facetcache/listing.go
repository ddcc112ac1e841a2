package facetcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/result"
)

// CacheKey is the key the filter listing is stored under.
const CacheKey = "aiportalx:facets:listing:v1"

// DefaultTTL applies when New receives a non-positive ttl.
const DefaultTTL = 10 * time.Minute

// Source computes the filter listing from the store.
type Source interface {
	Listing(ctx context.Context) (result.Listing, error)
}

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedListing caches the filter listing in a key-value store. Cache
// failures are logged and fall through to the source.
type CachedListing struct {
	inner      Source
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Source,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedListing {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedListing{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Listing returns the cached listing or computes and stores it.
func (c *CachedListing) Listing(ctx context.Context) (result.Listing, error) {
	if l, ok := c.getFromCache(ctx); ok {
		c.incCache("hit")
		return l, nil
	}
	c.incCache("miss")

	l, err := c.inner.Listing(ctx)
	if err != nil {
		return result.Listing{}, fmt.Errorf("compute listing: %w", err)
	}
	c.putToCache(ctx, l)
	return l, nil
}

// Invalidate drops the cached listing. A missing entry is not an error.
func (c *CachedListing) Invalidate(ctx context.Context) error {
	if err := c.store.Del(ctx, CacheKey); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return fmt.Errorf("invalidate listing: %w", err)
	}
	return nil
}

func (c *CachedListing) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedListing) getFromCache(ctx context.Context) (result.Listing, bool) {
	data, err := c.store.Get(ctx, CacheKey)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached listing", zap.Error(err))
		}
		return result.Listing{}, false
	}
	if len(data) == 0 {
		return result.Listing{}, false
	}

	var l result.Listing
	if err := json.Unmarshal(data, &l); err != nil {
		c.logger.Warn("Failed to parse cached listing", zap.Error(err))
		return result.Listing{}, false
	}
	return l, true
}

func (c *CachedListing) putToCache(ctx context.Context, l result.Listing) {
	data, err := json.Marshal(l)
	if err != nil {
		c.logger.Warn("Failed to encode listing", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, CacheKey, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache listing", zap.Error(err))
	}
}
