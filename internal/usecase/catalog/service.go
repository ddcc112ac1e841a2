package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/compare"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/facet"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/order"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/request"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/result"
)

// Page is one page of a listing plus the number of matches before paging.
type Page struct {
	Models []*model.Model
	Total  int
}

// Service answers catalogue listing, lookup and comparison requests.
type Service struct {
	repo    Repository
	listing ListingProvider
}

// New creates a catalog service. listing can be nil, in which case the
// filter listing is computed from the repository on every call.
func New(repo Repository, listing ListingProvider) *Service {
	if listing == nil {
		listing = NewLister(repo)
	}
	return &Service{repo: repo, listing: listing}
}

// List returns the models selected by req. A filtered listing is sorted by
// the requested order; a comparison keeps the order the names were given in.
func (s *Service) List(ctx context.Context, req request.List) (Page, error) {
	models, err := s.repo.Find(ctx, req.Predicate(), 0)
	if err != nil {
		return Page{}, fmt.Errorf("list models: %w", err)
	}

	if req.IsCompare() {
		models = byNames(models, req.Names())
	} else {
		order.Sort(models, req.Order())
	}

	return Page{Models: paginate(models, req.Offset(), req.Limit()), Total: len(models)}, nil
}

// Get looks a model up by organization and model slug.
func (s *Service) Get(ctx context.Context, organization, name string) (*model.Model, error) {
	id := &predicate.Identity{Primary: organization, Secondary: name}
	if !id.Valid() {
		return nil, domain.NewQueryError("organization/model", "are both required")
	}
	m, err := s.repo.Get(ctx, predicate.Build(facet.Bag{}, id))
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", strings.TrimSpace(organization), strings.TrimSpace(name), err)
	}
	return m, nil
}

// Compare resolves a "a-vs-b" path segment into the compared models.
func (s *Service) Compare(ctx context.Context, segment string) ([]*model.Model, error) {
	names, err := compare.Parse(segment)
	if err != nil {
		return nil, err //nolint:wrapcheck // already a domain error
	}
	req, err := request.NewList(facet.Bag{}, names, order.Default, 0, 0)
	if err != nil {
		return nil, err //nolint:wrapcheck // already a domain error
	}
	page, err := s.List(ctx, req)
	if err != nil {
		return nil, err
	}
	return page.Models, nil
}

// Filters returns the distinct facet values used to build filter menus.
func (s *Service) Filters(ctx context.Context) (result.Listing, error) {
	l, err := s.listing.Listing(ctx)
	if err != nil {
		return result.Listing{}, fmt.Errorf("filters: %w", err)
	}
	return l, nil
}

// byNames orders models by the position of their name in names. Models
// sharing a name keep storage order; each model appears once.
func byNames(models []*model.Model, names []string) []*model.Model {
	out := make([]*model.Model, 0, len(models))
	taken := make([]bool, len(models))
	for _, n := range names {
		for i, m := range models {
			if !taken[i] && match.Equal(m.Name, n) {
				taken[i] = true
				out = append(out, m)
			}
		}
	}
	return out
}

func paginate(models []*model.Model, offset, limit int) []*model.Model {
	if offset >= len(models) {
		return []*model.Model{}
	}
	models = models[offset:]
	if limit > 0 && limit < len(models) {
		models = models[:limit]
	}
	return models
}
