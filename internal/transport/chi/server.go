package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/facet"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/request"
	logpkg "github.com/waqarniyazi/aiportalx/internal/logger"
	catalogc "github.com/waqarniyazi/aiportalx/internal/usecase/catalog"
	healthuc "github.com/waqarniyazi/aiportalx/internal/usecase/health"
	searchuc "github.com/waqarniyazi/aiportalx/internal/usecase/search"
	seeduc "github.com/waqarniyazi/aiportalx/internal/usecase/seed"
)

// ModelsResponse is one page of models.
type ModelsResponse struct {
	Models []*model.Model `json:"models"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit,omitempty"`
	Offset int            `json:"offset,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Server serves the catalogue HTTP API.
type Server struct {
	catalog       *catalogc.Service
	search        *searchuc.Service
	seeder        *seeduc.Service
	health        *healthuc.Service
	registry      *facet.Registry
	logger        *zap.Logger
	errorHandlers []errorHandler

	apiKeys      []string
	defaultLimit int
	maxLimit     int
}

// Option configures a Server.
type Option func(*Server)

// WithAPIKeys protects the admin routes with bearer tokens.
func WithAPIKeys(keys []string) Option {
	return func(s *Server) { s.apiKeys = keys }
}

// WithPaging sets the page size used when a request gives none and the
// largest page a request may ask for. Zero means no limit.
func WithPaging(defaultLimit, maxLimit int) Option {
	return func(s *Server) {
		s.defaultLimit = defaultLimit
		s.maxLimit = maxLimit
	}
}

// WithRegistry replaces the default facet registry.
func WithRegistry(r *facet.Registry) Option {
	return func(s *Server) { s.registry = r }
}

// NewServer creates an HTTP API server. seeder can be nil, in which case the
// admin seed route answers 501.
func NewServer(
	catalog *catalogc.Service,
	search *searchuc.Service,
	seeder *seeduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		catalog:       catalog,
		search:        search,
		seeder:        seeder,
		health:        health,
		registry:      facet.DefaultRegistry(),
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/models", s.ListModels)
		r.Post("/models", s.QueryModels)
		r.Get("/models/{organization}/{model}", s.GetModel)
		r.Get("/compare/{slugs}", s.CompareModels)
		r.Get("/filters", s.ListFilters)
		r.Get("/search", s.SearchNames)
		r.Get("/globalsearch", s.GlobalSearch)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.apiKeys))
			r.Post("/admin/seed", s.Seed)
		})
	})
}

// Handler returns a router serving the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// ListModels handles GET /api/models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	req, err := s.listFromQuery(r.URL.Query())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writePage(w, r, req)
}

// QueryModels handles POST /api/models.
func (s *Server) QueryModels(w http.ResponseWriter, r *http.Request) {
	req, err := s.listFromBody(r.Body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writePage(w, r, req)
}

// GetModel handles GET /api/models/{organization}/{model}.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	m, err := s.catalog.Get(r.Context(), pathParam(r, "organization"), pathParam(r, "model"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// CompareModels handles GET /api/compare/{slugs}.
func (s *Server) CompareModels(w http.ResponseWriter, r *http.Request) {
	// chi routes on the escaped path, so names keep their escapes until
	// the segment is split.
	models, err := s.catalog.Compare(r.Context(), chi.URLParam(r, "slugs"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: models, Total: len(models)})
}

// ListFilters handles GET /api/filters.
func (s *Server) ListFilters(w http.ResponseWriter, r *http.Request) {
	l, err := s.catalog.Filters(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// SearchNames handles GET /api/search.
func (s *Server) SearchNames(w http.ResponseWriter, r *http.Request) {
	models, err := s.search.Names(r.Context(), searchTerm(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: nonNil(models), Total: len(models)})
}

// GlobalSearch handles GET /api/globalsearch.
func (s *Server) GlobalSearch(w http.ResponseWriter, r *http.Request) {
	groups, err := s.search.Global(r.Context(), searchTerm(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Seed handles POST /api/admin/seed. The body is a JSON array of model
// documents; ?force=true seeds a populated store.
func (s *Server) Seed(w http.ResponseWriter, r *http.Request) {
	if s.seeder == nil {
		s.handleDomainError(w, domain.ErrNotImplemented)
		return
	}
	models, err := seeduc.Decode(http.MaxBytesReader(w, r.Body, maxSeedBytes))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	opts := seeduc.Options{Force: parseBool(r.URL.Query().Get("force"))}
	report, err := s.seeder.Seed(r.Context(), models, opts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	logpkg.FromContext(r.Context()).Info("seeded via api",
		zap.Int("received", report.Received),
		zap.Int("written", report.Written),
		zap.Bool("skipped", report.Skipped),
	)
	writeJSON(w, http.StatusOK, report)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, req request.List) {
	page, err := s.catalog.List(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{
		Models: nonNil(page.Models),
		Total:  page.Total,
		Limit:  req.Limit(),
		Offset: req.Offset(),
	})
}

func nonNil(models []*model.Model) []*model.Model {
	if models == nil {
		return []*model.Model{}
	}
	return models
}
