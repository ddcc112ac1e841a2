// Package postgres stores the catalogue in a PostgreSQL table with one
// text[] column per facet and the full document as JSONB.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

var _ db.Store = (*Store)(nil)

// Queryer is the subset of pgxpool.Pool the store uses.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store implements db.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	q    Queryer
}

// NewStore parses dsn and opens a connection pool.
func NewStore(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{pool: pool, q: pool}, nil
}

const schema = `
CREATE OR REPLACE FUNCTION ascii_fold(t text) RETURNS text
LANGUAGE sql IMMUTABLE STRICT AS $$
  SELECT translate(t, 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz')
$$;

CREATE TABLE IF NOT EXISTS models (
  seq          BIGSERIAL,
  id           TEXT PRIMARY KEY,
  name         TEXT NOT NULL DEFAULT '',
  task         TEXT[] NOT NULL DEFAULT '{}',
  domain       TEXT[] NOT NULL DEFAULT '{}',
  organization TEXT[] NOT NULL DEFAULT '{}',
  country      TEXT[] NOT NULL DEFAULT '{}',
  doc          JSONB NOT NULL,
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS models_seq_idx ON models (seq);
CREATE INDEX IF NOT EXISTS models_task_idx ON models USING GIN (task);
CREATE INDEX IF NOT EXISTS models_domain_idx ON models USING GIN (domain);
CREATE INDEX IF NOT EXISTS models_organization_idx ON models USING GIN (organization);
CREATE INDEX IF NOT EXISTS models_country_idx ON models USING GIN (country);`

// EnsureSchema creates the table, its indexes and the ascii_fold helper.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schema); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// WaitForReady polls Ping until it succeeds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout) //nolint:wrapcheck // already wrapped
}

// Find runs q as a single SELECT in insertion order.
func (s *Store) Find(ctx context.Context, q *db.Query) ([]*model.Model, error) {
	where, args, err := Where(q.Predicate)
	if err != nil {
		return nil, err
	}
	sql := "SELECT doc FROM models WHERE " + where + " ORDER BY seq"
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	defer rows.Close()

	out := make([]*model.Model, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, &db.Error{Op: db.OpFind, Err: fmt.Errorf("scan model: %w", err)}
		}
		var m model.Model
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, &db.Error{Op: db.OpFind, Err: fmt.Errorf("decode model: %w", err)}
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
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

const upsertSQL = `
INSERT INTO models (id, name, task, domain, organization, country, doc)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id)
DO UPDATE SET
  name = EXCLUDED.name,
  task = EXCLUDED.task,
  domain = EXCLUDED.domain,
  organization = EXCLUDED.organization,
  country = EXCLUDED.country,
  doc = EXCLUDED.doc,
  updated_at = NOW()`

// UpsertMany writes all models in one batch.
func (s *Store) UpsertMany(ctx context.Context, models []*model.Model) error {
	if len(models) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, m := range models {
		doc, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode model %s: %w", m.ID, err)
		}
		batch.Queue(upsertSQL, m.ID, m.Name,
			nonNil(m.Task), nonNil(m.Domain), nonNil(m.Organization), nonNil(m.Country), doc)
	}

	br := s.q.SendBatch(ctx, batch)
	var errs []error
	for range models {
		if _, err := br.Exec(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := br.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}

// Count returns the number of stored models.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRow(ctx, "SELECT count(*) FROM models").Scan(&n); err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
