package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// maxResults matches the default MAXSEARCHRESULTS of the search module.
const maxResults = 10000

// document is the stored JSON shape: the model plus slug keys used by
// identity lookups.
type document struct {
	*model.Model
	OrgKeys []string `json:"__org_keys"`
	NameKey string   `json:"__name_key"`
}

func newDocument(m *model.Model) document {
	keys := make([]string, 0, len(m.Organization))
	for _, o := range m.Organization {
		keys = append(keys, match.SlugKey(o))
	}
	return document{Model: m, OrgKeys: keys, NameKey: match.SlugKey(m.Name)}
}

// Find runs q through FT.SEARCH and decodes the matching documents.
func (s *Store) Find(ctx context.Context, q *db.Query) ([]*model.Model, error) {
	p := q.Predicate
	if p == nil {
		p = predicate.FacetConjunction{}
	}
	tr, err := translate(p)
	if err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 || tr.postEval {
		limit = maxResults
	}
	models, err := s.search(ctx, tr.query, limit)
	if err != nil {
		return nil, err
	}
	if tr.postEval {
		return db.Apply(models, &db.Query{Predicate: p, Limit: q.Limit}), nil
	}
	return models, nil
}

// FindOne returns the first document matching p.
func (s *Store) FindOne(ctx context.Context, p predicate.Predicate) (*model.Model, error) {
	models, err := s.Find(ctx, &db.Query{Predicate: p, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return models[0], nil
}

// UpsertMany writes every model with a pipelined JSON.SET.
func (s *Store) UpsertMany(ctx context.Context, models []*model.Model) error {
	if len(models) == 0 {
		return nil
	}
	cmds := make(rueidis.Commands, 0, len(models))
	for _, m := range models {
		data, err := json.Marshal(newDocument(m))
		if err != nil {
			return fmt.Errorf("marshal model %s: %w", m.ID, err)
		}
		cmds = append(cmds, s.b().JsonSet().Key(s.key(m.ID)).Path("$").Value(string(data)).Build())
	}
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpJSONSet, Err: fmt.Errorf("model %s: %w", models[i].ID, err)}
		}
	}
	return nil
}

// Count returns the number of indexed documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").Args(s.indexName, matchAll, "LIMIT", "0", "0").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

func (s *Store) search(ctx context.Context, query string, limit int) ([]*model.Model, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").Args(
		s.indexName, query,
		"RETURN", "1", "$",
		"LIMIT", "0", strconv.Itoa(limit),
		"DIALECT", "2",
	).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return parseListResult(raw)
}

// --- Result parsing ---

func parseListResult(raw []rueidis.RedisMessage) ([]*model.Model, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	models := make([]*model.Model, 0, total)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		body, ok := parseFieldPairs(fields)["$"]
		if !ok {
			continue
		}
		var m model.Model
		if err := json.Unmarshal([]byte(body), &m); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		models = append(models, &m)
	}

	return models, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}
