package client

import (
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/flatten"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/result"
	seeduc "github.com/waqarniyazi/aiportalx/internal/usecase/seed"
)

// Types re-exported from the domain layer.
type (
	// Model is one catalogue record.
	Model = model.Model
	// FacetValue is a distinct facet value and the id of the first model carrying it.
	FacetValue = flatten.Value
	// Filters lists the distinct values of every facet.
	Filters = result.Listing
	// SearchGroups is a global search answer grouped by facet.
	SearchGroups = result.Groups
	// SeedReport summarizes a seed run.
	SeedReport = seeduc.Report
)

// Page is one page of a model listing.
type Page struct {
	Models []*Model `json:"models"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit,omitempty"`
	Offset int      `json:"offset,omitempty"`
}

// ListOptions selects and orders models. Slugs, when set, turns the request
// into a comparison lookup and Filters are ignored by the server.
type ListOptions struct {
	Filters map[string][]string
	Slugs   []string
	Sort    string
	Order   string
	Limit   int
	Offset  int
}

// HealthStatus represents the aggregated server health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}
