// Package result holds the response shapes built from flattened records.
package result

import (
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/flatten"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
)

// Listing is the set of distinct facet values across the whole catalogue,
// used to populate filter menus.
type Listing struct {
	Tasks         []flatten.Value `json:"tasks"`
	Domains       []flatten.Value `json:"domains"`
	Organizations []flatten.Value `json:"organizations"`
	Countries     []flatten.Value `json:"countries"`
	Models        []flatten.Value `json:"models"`
}

// NewListing flattens every facet field of models.
func NewListing(models []*model.Model) Listing {
	return Listing{
		Tasks:         flatten.Flatten(models, model.FieldTask),
		Domains:       flatten.Flatten(models, model.FieldDomain),
		Organizations: flatten.Flatten(models, model.FieldOrganization),
		Countries:     flatten.Flatten(models, model.FieldCountry),
		Models:        flatten.Flatten(models, model.FieldModel),
	}
}

// Groups is a global search answer bucketed by facet type.
type Groups struct {
	Models        []*model.Model  `json:"models"`
	Tasks         []flatten.Value `json:"tasks"`
	Organizations []flatten.Value `json:"organizations"`
	Domains       []flatten.Value `json:"domains"`
	Countries     []flatten.Value `json:"countries"`
}

// NewGroups buckets the records that matched term. Models are the records
// whose name contains term, at most limit of them; each facet bucket holds
// the distinct facet values that contain term.
func NewGroups(records []*model.Model, term string, limit int) Groups {
	contains := func(v string) bool { return match.Contains(v, term) }

	models := make([]*model.Model, 0, limit)
	for _, m := range records {
		if len(models) == limit {
			break
		}
		if contains(m.Name) {
			models = append(models, m)
		}
	}

	return Groups{
		Models:        models,
		Tasks:         flatten.Select(flatten.Flatten(records, model.FieldTask), contains),
		Organizations: flatten.Select(flatten.Flatten(records, model.FieldOrganization), contains),
		Domains:       flatten.Select(flatten.Flatten(records, model.FieldDomain), contains),
		Countries:     flatten.Select(flatten.Flatten(records, model.FieldCountry), contains),
	}
}
