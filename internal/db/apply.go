package db

import "github.com/waqarniyazi/aiportalx/internal/domain/model"

// Apply evaluates q in process over models, keeping input order. Drivers
// without a native query language use it.
func Apply(models []*model.Model, q *Query) []*model.Model {
	out := make([]*model.Model, 0)
	for _, m := range models {
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
		if q.Predicate == nil || q.Predicate.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}
