package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/translate/ptlsearch/internal/domain"
	healthuc "github.com/translate/ptlsearch/internal/usecase/health"
	searchuc "github.com/translate/ptlsearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the search API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, ErrorResponseCodeBadRequest),
		sentinelHandler(domain.ErrPopularDisabled, http.StatusNotImplemented, ErrorResponseCodePopularDisabled),
	}
	return s
}

// Routes registers the API routes on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r gochi.Router) {
		r.Get("/search/parse", s.ParseQuery)
		r.Get("/search/popular", s.PopularQueries)
		r.Get("/environments", s.ListEnvironments)
	})
}

// ParseQuery handles GET /api/v1/search/parse.
func (s *Server) ParseQuery(w http.ResponseWriter, r *http.Request) {
	var params ParseParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", q, &params.Q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "env", q, &params.Env); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter env: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "checked", q, &params.Checked); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter checked: "+err.Error())
		return
	}

	res := s.search.Parse(r.Context(), deref(params.Env), deref(params.Q), derefSlice(params.Checked))

	fields := res.Query.Fields()
	if fields == nil {
		fields = []string{}
	}
	writeJSON(w, http.StatusOK, ParseResponse{
		Environment: res.Environment,
		Text:        res.Query.Text(),
		Fields:      fields,
		Scope:       string(res.Query.Scope()),
		Encoded:     res.Query.Encode(),
	})
}

// PopularQueries handles GET /api/v1/search/popular.
func (s *Server) PopularQueries(w http.ResponseWriter, r *http.Request) {
	var params PopularParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "env", q, &params.Env); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter env: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter limit: "+err.Error())
		return
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	env, entries, err := s.search.Popular(r.Context(), deref(params.Env), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]PopularItem, len(entries))
	for i, e := range entries {
		items[i] = PopularItem{Query: e.Query, Count: e.Count}
	}
	writeJSON(w, http.StatusOK, PopularResponse{Environment: env, Items: items})
}

// ListEnvironments handles GET /api/v1/environments.
func (s *Server) ListEnvironments(w http.ResponseWriter, _ *http.Request) {
	def, infos := s.search.Environments()

	envs := make([]Environment, len(infos))
	for i, e := range infos {
		envs[i] = Environment{Name: e.Name, Fields: e.Fields}
	}
	writeJSON(w, http.StatusOK, EnvironmentsResponse{Default: def, Environments: envs})
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler creates an errorHandler that matches a sentinel error via errors.Is.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefSlice(p *[]string) []string {
	if p == nil {
		return nil
	}
	return *p
}
