package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/bootstrap"
	"github.com/waqarniyazi/aiportalx/internal/config"
	"github.com/waqarniyazi/aiportalx/internal/domain"
	logpkg "github.com/waqarniyazi/aiportalx/internal/logger"
	catalogrepo "github.com/waqarniyazi/aiportalx/internal/repository/catalog"
	"github.com/waqarniyazi/aiportalx/internal/repository/facetcache"
	catalogc "github.com/waqarniyazi/aiportalx/internal/usecase/catalog"
	seeduc "github.com/waqarniyazi/aiportalx/internal/usecase/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		env        string
		force      bool
		remote     bool
		categorize bool
	)

	cmd := &cobra.Command{
		Use:   "seed [dataset.json]",
		Short: "Load a JSON dataset of models into the catalogue",
		Long: `Load a JSON array of model documents into the catalogue. Without a path
the seed.path of the configuration is used.

By default the dataset is written straight into the store named by the
configuration of --env. With --remote it is uploaded to the API server,
which needs --api-key.

A populated catalogue is left alone unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			var (
				rep seeduc.Report
				err error
			)
			if remote {
				rep, err = seedRemote(cmd.Context(), a, path, force)
			} else {
				rep, err = seedLocal(cmd.Context(), env, path, force, categorize)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return printJSON(out, rep)
			}
			if rep.Skipped {
				warn(out, "Catalogue already holds %d models, nothing written (use --force)", rep.Existing)
				return nil
			}
			ok(out, "Seeded %d of %d documents (%d duplicates, %d invalid, %d categorized)",
				rep.Written, rep.Received, rep.Duplicates, rep.Invalid, rep.Categorized)
			return nil
		},
	}

	cmd.Flags().StringVar(&env, "env", config.GetEnv(), "Configuration environment (config/<env>.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Seed even when the catalogue is populated")
	cmd.Flags().BoolVar(&remote, "remote", false, "Upload to the API server instead of the store")
	cmd.Flags().BoolVar(&categorize, "categorize", false, "Fill missing tasks with the configured categorizer")
	return cmd
}

func seedRemote(ctx context.Context, a *app, path string, force bool) (seeduc.Report, error) {
	if path == "" {
		return seeduc.Report{}, fmt.Errorf("a dataset path is required with --remote")
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return seeduc.Report{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	rep, err := a.client().Seed(ctx, f, force)
	if err != nil {
		return seeduc.Report{}, fmt.Errorf("upload dataset: %w", err)
	}
	return *rep, nil
}

func seedLocal(ctx context.Context, env, path string, force, categorize bool) (seeduc.Report, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return seeduc.Report{}, err //nolint:wrapcheck // already descriptive
	}
	if path == "" {
		path = cfg.Seed.Path
	}
	if path == "" {
		return seeduc.Report{}, fmt.Errorf("no dataset path given and seed.path is not configured")
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return seeduc.Report{}, fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := bootstrap.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return seeduc.Report{}, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	repo := catalogrepo.New(store, nil)

	var categorizer domain.Categorizer
	if categorize {
		c := bootstrap.Categorizer(cfg.Categorizer, logger)
		if c == nil {
			return seeduc.Report{}, fmt.Errorf("--categorize needs categorizer.enabled in config/%s.yaml", env)
		}
		categorizer = c
	}

	// A server sharing the store keeps its facet listing in the same cache.
	var invalidator seeduc.Invalidator
	if cfg.Cache.Enabled {
		invalidator = facetcache.New(
			catalogc.NewLister(repo),
			bootstrap.CacheStore(store),
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			nil,
			logger,
		)
	}

	svc := seeduc.New(repo, categorizer, invalidator, nil, logger)
	rep, err := svc.SeedFile(ctx, path, seeduc.Options{Force: force})
	if err != nil {
		return seeduc.Report{}, fmt.Errorf("seed %s: %w", path, err)
	}
	logger.Debug("seed finished", zap.String("path", path), zap.Int("written", rep.Written))
	return rep, nil
}
