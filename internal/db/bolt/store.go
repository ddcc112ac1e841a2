// Package bolt is a file-backed catalogue store on bbolt. Documents are JSON
// values; predicates are evaluated in process.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

var _ db.Store = (*Store)(nil)

var (
	// bModels holds sequence -> model JSON, so iteration follows insertion order.
	bModels = []byte("models")
	// bIDs holds model id -> sequence.
	bIDs = []byte("model_ids")
)

// Options configures Open.
type Options struct {
	Path    string // e.g. "./data/aiportalx.db"
	Timeout time.Duration
}

// Store is a bbolt-backed db.Store.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database file and its buckets.
func Open(opt Options) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("bolt: missing path")
	}
	if opt.Timeout <= 0 {
		opt.Timeout = time.Second
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, fmt.Errorf("bolt: create dir: %w", err)
	}
	bdb, err := bolt.Open(opt.Path, 0o600, &bolt.Options{Timeout: opt.Timeout})
	if err != nil {
		return nil, fmt.Errorf("bolt: open %s: %w", opt.Path, err)
	}
	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bModels, bIDs} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, &db.Error{Op: db.OpMigrate, Err: err}
	}
	return &Store{db: bdb}, nil
}

// Ping checks that the database is still open.
func (s *Store) Ping(context.Context) error {
	if err := s.db.View(func(*bolt.Tx) error { return nil }); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the database file.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady polls Ping until it succeeds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout) //nolint:wrapcheck // already wrapped
}

// Find decodes every document and evaluates q.
func (s *Store) Find(ctx context.Context, q *db.Query) ([]*model.Model, error) {
	var out []*model.Model
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bModels).ForEach(func(_, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if q.Limit > 0 && len(out) == q.Limit {
				return nil
			}
			var m model.Model
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("decode model: %w", err)
			}
			if q.Predicate == nil || q.Predicate.Matches(&m) {
				out = append(out, &m)
			}
			return nil
		})
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	return out, nil
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

// UpsertMany writes all models in one transaction. Known ids keep their
// position.
func (s *Store) UpsertMany(_ context.Context, models []*model.Model) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		docs := tx.Bucket(bModels)
		ids := tx.Bucket(bIDs)
		for _, m := range models {
			data, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("encode model %s: %w", m.ID, err)
			}
			seq := ids.Get([]byte(m.ID))
			if seq == nil {
				n, err := docs.NextSequence()
				if err != nil {
					return err
				}
				seq = seqKey(n)
				if err := ids.Put([]byte(m.ID), seq); err != nil {
					return err
				}
			}
			if err := docs.Put(seq, data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}

// Count returns the number of stored models.
func (s *Store) Count(context.Context) (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bModels).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

func seqKey(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
