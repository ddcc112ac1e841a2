package search

import (
	"context"
	"fmt"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/request"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/result"
)

// globalFields are the fields global search looks the term up in.
var globalFields = []string{
	model.FieldModel,
	model.FieldTask,
	model.FieldOrganization,
	model.FieldDomain,
	model.FieldCountry,
}

// Service handles free-text search over model names and facet values.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Names returns up to request.SearchLimit models whose name contains q.
func (s *Service) Names(ctx context.Context, q string) ([]*model.Model, error) {
	term, err := request.NewTerm(q)
	if err != nil {
		return nil, err //nolint:wrapcheck // already a domain error
	}
	models, err := s.repo.Find(ctx, predicate.Text(term, model.FieldModel), request.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search names: %w", err)
	}
	return models, nil
}

// Global searches names and every facet at once and groups the answer by
// facet type.
func (s *Service) Global(ctx context.Context, q string) (result.Groups, error) {
	term, err := request.NewTerm(q)
	if err != nil {
		return result.Groups{}, err //nolint:wrapcheck // already a domain error
	}
	records, err := s.repo.Find(ctx, predicate.Text(term, globalFields...), 0)
	if err != nil {
		return result.Groups{}, fmt.Errorf("global search: %w", err)
	}
	return result.NewGroups(records, term, request.SearchLimit), nil
}
