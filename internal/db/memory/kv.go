package memory

import (
	"context"
	"sync"
	"time"

	"github.com/waqarniyazi/aiportalx/internal/db"
)

var _ db.KVStore = (*KV)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// KV is an in-process key-value store with per-key expiry.
type KV struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

// NewKV creates an empty KV.
func NewKV() *KV {
	return &KV{items: make(map[string]entry), now: time.Now}
}

// Get returns the value at key or db.ErrKeyNotFound when absent or expired.
func (k *KV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, ok := k.items[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	if !e.expiresAt.IsZero() && !k.now().Before(e.expiresAt) {
		delete(k.items, key)
		return nil, db.ErrKeyNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// SetWithTTL stores value at key. A non-positive ttl never expires.
func (k *KV) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = k.now().Add(ttl)
	}
	k.items[key] = e
	return nil
}

// Del removes key.
func (k *KV) Del(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.items, key)
	return nil
}
