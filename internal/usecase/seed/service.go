package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/flatten"
)

// DefaultBatchSize bounds the number of documents per upsert call.
const DefaultBatchSize = 500

// Options control one seeding run.
type Options struct {
	// Force seeds even when the store already holds models.
	Force bool
}

// Report summarizes a seeding run.
type Report struct {
	Received    int  `json:"received"`
	Written     int  `json:"written"`
	Duplicates  int  `json:"duplicates"`
	Invalid     int  `json:"invalid"`
	Categorized int  `json:"categorized"`
	Skipped     bool `json:"skipped"`
	Existing    int  `json:"existing"`
}

// Service loads model documents into the store.
type Service struct {
	repo        Repository
	categorizer domain.Categorizer
	invalidator Invalidator
	seeded      prometheus.Counter
	batchSize   int
	logger      *zap.Logger
}

// New creates a seed service. categorizer, invalidator and seeded can be nil.
func New(
	repo Repository,
	categorizer domain.Categorizer,
	invalidator Invalidator,
	seeded prometheus.Counter,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        repo,
		categorizer: categorizer,
		invalidator: invalidator,
		seeded:      seeded,
		batchSize:   DefaultBatchSize,
		logger:      logger,
	}
}

// SeedFile decodes the dataset at path and seeds it.
func (s *Service) SeedFile(ctx context.Context, path string, opts Options) (Report, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return Report{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	models, err := Decode(f)
	if err != nil {
		return Report{}, err
	}
	return s.Seed(ctx, models, opts)
}

// Seed writes models to the store. Unless opts.Force is set, a store that
// already holds models is left untouched. Models without a name are dropped;
// of models sharing an organization and name the first one wins.
func (s *Service) Seed(ctx context.Context, models []*model.Model, opts Options) (Report, error) {
	rep := Report{Received: len(models)}

	if !opts.Force {
		n, err := s.repo.Count(ctx)
		if err != nil {
			return rep, fmt.Errorf("count existing: %w", err)
		}
		if n > 0 {
			s.logger.Info("Catalogue already seeded, skipping", zap.Int("existing", n))
			rep.Skipped, rep.Existing = true, n
			return rep, nil
		}
	}

	kept := s.prepare(models, &rep)
	rep.Categorized = s.categorize(ctx, kept)

	for start := 0; start < len(kept); start += s.batchSize {
		end := min(start+s.batchSize, len(kept))
		if err := s.repo.Upsert(ctx, kept[start:end]); err != nil {
			return rep, fmt.Errorf("upsert batch at %d: %w", start, err)
		}
		rep.Written = end
	}
	if s.seeded != nil {
		s.seeded.Add(float64(rep.Written))
	}

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate derived data", zap.Error(err))
		}
	}

	s.logger.Info("Catalogue seeded",
		zap.Int("received", rep.Received),
		zap.Int("written", rep.Written),
		zap.Int("duplicates", rep.Duplicates),
		zap.Int("invalid", rep.Invalid),
		zap.Int("categorized", rep.Categorized),
	)
	return rep, nil
}

// prepare drops invalid and duplicate documents and assigns missing ids.
// Input models are not modified.
func (s *Service) prepare(models []*model.Model, rep *Report) []*model.Model {
	kept := make([]*model.Model, 0, len(models))
	seen := make(map[string]struct{}, len(models))
	for _, in := range models {
		if in == nil || strings.TrimSpace(in.Name) == "" {
			rep.Invalid++
			continue
		}
		key := identityKey(in)
		if _, dup := seen[key]; dup {
			rep.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		m := *in
		m.Name = strings.TrimSpace(m.Name)
		if strings.TrimSpace(m.ID) == "" {
			m.ID = stableID(&m)
		}
		kept = append(kept, &m)
	}
	return kept
}

// categorize asks the categorizer for the tasks of models that list none.
// The vocabulary is the set of tasks already present in the dataset.
// Failures are logged; an unavailable categorizer stops further calls.
func (s *Service) categorize(ctx context.Context, models []*model.Model) int {
	if s.categorizer == nil {
		return 0
	}
	vocabulary := flatten.Strings(flatten.Flatten(models, model.FieldTask))

	n := 0
	for _, m := range models {
		if len(m.Task) > 0 {
			continue
		}
		tasks, err := s.categorizer.Categorize(ctx, m.Name, m.Abstract, vocabulary)
		if err != nil {
			if errors.Is(err, domain.ErrCategorizerUnavailable) || ctx.Err() != nil {
				s.logger.Warn("Categorizer unavailable, leaving remaining models untagged", zap.Error(err))
				return n
			}
			s.logger.Warn("Failed to categorize model", zap.String("model", m.Name), zap.Error(err))
			continue
		}
		if len(tasks) > 0 {
			m.Task = tasks
			n++
		}
	}
	return n
}
