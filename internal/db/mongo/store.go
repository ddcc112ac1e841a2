// Package mongo stores the catalogue in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

var _ db.Store = (*Store)(nil)

// Config holds connection parameters.
type Config struct {
	URI        string
	Database   string
	Collection string
	PoolSize   uint64
}

// Store implements db.Store on a single collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewStore connects to MongoDB. The caller owns the returned Store and must
// Close it.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = "llmodels"
	}
	if cfg.Collection == "" {
		cfg.Collection = "models"
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.PoolSize > 0 {
		opts.SetMaxPoolSize(cfg.PoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// EnsureIndexes creates ascending indexes on the facet fields.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	fields := []string{
		model.FieldTask, model.FieldDomain, model.FieldOrganization,
		model.FieldCountry, model.FieldModel,
	}
	indexes := make([]mongo.IndexModel, 0, len(fields))
	for _, f := range fields {
		indexes = append(indexes, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
	}
	opts := options.CreateIndexes().SetMaxTime(10 * time.Second)
	if _, err := s.collection.Indexes().CreateMany(ctx, indexes, opts); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}

// Ping checks connectivity against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// WaitForReady polls Ping until it succeeds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout) //nolint:wrapcheck // already wrapped
}

// Find translates q into a filter document and decodes the cursor.
func (s *Store) Find(ctx context.Context, q *db.Query) ([]*model.Model, error) {
	filter, err := Filter(q.Predicate)
	if err != nil {
		return nil, err
	}
	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cur, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	defer cur.Close(ctx)

	out := make([]*model.Model, 0)
	for cur.Next(ctx) {
		var m model.Model
		if err := cur.Decode(&m); err != nil {
			return nil, &db.Error{Op: db.OpFind, Err: fmt.Errorf("decode: %w", err)}
		}
		out = append(out, &m)
	}
	if err := cur.Err(); err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}
	return out, nil
}

// FindOne returns the first document matching p.
func (s *Store) FindOne(ctx context.Context, p predicate.Predicate) (*model.Model, error) {
	filter, err := Filter(p)
	if err != nil {
		return nil, err
	}
	var m model.Model
	if err := s.collection.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpFindOne, Err: err}
	}
	return &m, nil
}

// UpsertMany replaces documents by _id in one unordered bulk write.
func (s *Store) UpsertMany(ctx context.Context, models []*model.Model) error {
	if len(models) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(models))
	for _, m := range models {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: model.FieldID, Value: m.ID}}).
			SetReplacement(m).
			SetUpsert(true))
	}
	if _, err := s.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}

// Count returns the number of documents in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := s.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return int(n), nil
}
