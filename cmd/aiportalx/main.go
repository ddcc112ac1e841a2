package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/bootstrap"
	"github.com/waqarniyazi/aiportalx/internal/config"
	"github.com/waqarniyazi/aiportalx/internal/domain"
	logpkg "github.com/waqarniyazi/aiportalx/internal/logger"
	"github.com/waqarniyazi/aiportalx/internal/metrics"
	catalogrepo "github.com/waqarniyazi/aiportalx/internal/repository/catalog"
	"github.com/waqarniyazi/aiportalx/internal/repository/facetcache"
	chiTransport "github.com/waqarniyazi/aiportalx/internal/transport/chi"
	catalogc "github.com/waqarniyazi/aiportalx/internal/usecase/catalog"
	healthuc "github.com/waqarniyazi/aiportalx/internal/usecase/health"
	searchuc "github.com/waqarniyazi/aiportalx/internal/usecase/search"
	seeduc "github.com/waqarniyazi/aiportalx/internal/usecase/seed"
	"github.com/waqarniyazi/aiportalx/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting aiportalx API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer store.Close()

	// Register catalog metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	// Categorizer chain. Pass nil interfaces, not typed nil pointers, when disabled.
	var (
		categorizer      domain.Categorizer
		categorizerCheck healthuc.CategorizerChecker
	)
	if c := bootstrap.Categorizer(cfg.Categorizer, logger); c != nil {
		categorizer, categorizerCheck = c, c
	}

	repo := catalogrepo.New(store, metrics.CatalogQueriesTotal)

	var (
		listing     catalogc.ListingProvider = catalogc.NewLister(repo)
		invalidator seeduc.Invalidator
	)
	if cfg.Cache.Enabled {
		cached := facetcache.New(
			catalogc.NewLister(repo),
			bootstrap.CacheStore(store),
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.FacetCacheTotal,
			logger,
		)
		listing, invalidator = cached, cached
	}

	catalogSvc := catalogc.New(repo, listing)
	searchSvc := searchuc.New(repo)
	seedSvc := seeduc.New(repo, categorizer, invalidator, metrics.SeededModelsTotal, logger)
	healthSvc := healthuc.New(store, categorizerCheck)

	if cfg.Seed.OnStart {
		report, err := seedSvc.SeedFile(ctx, cfg.Seed.Path, seeduc.Options{Force: cfg.Seed.Force})
		if err != nil {
			logger.Error("Initial seed failed", zap.String("path", cfg.Seed.Path), zap.Error(err))
		} else {
			logger.Info("Initial seed finished",
				zap.Int("written", report.Written),
				zap.Bool("skipped", report.Skipped),
			)
		}
	}

	if cfg.Seed.Watch {
		watcher := seeduc.NewWatcher(seedSvc, cfg.Seed.Path, time.Duration(cfg.Seed.DebounceMS)*time.Millisecond, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Seed watcher stopped", zap.Error(err))
			}
		}()
	}

	server := chiTransport.NewServer(catalogSvc, searchSvc, seedSvc, healthSvc, logger,
		chiTransport.WithAPIKeys(cfg.Auth.APIKeys),
		chiTransport.WithPaging(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize),
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware(cfg.CORS.Origins))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "bad_request", "method not allowed")
	})
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", route),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
