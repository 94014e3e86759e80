package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/northgate-partners/webcore/internal/domain"
	"github.com/northgate-partners/webcore/internal/logger"
	"github.com/northgate-partners/webcore/internal/metrics"
	analyticsuc "github.com/northgate-partners/webcore/internal/usecase/analytics"
	contactuc "github.com/northgate-partners/webcore/internal/usecase/contact"
	healthuc "github.com/northgate-partners/webcore/internal/usecase/health"
	searchuc "github.com/northgate-partners/webcore/internal/usecase/search"
	sitemapuc "github.com/northgate-partners/webcore/internal/usecase/sitemap"
)

// maxPageLimit caps the per-page result count; out-of-range values fall
// back to the default rather than erroring.
const maxPageLimit = 100

// Server holds the HTTP handlers for the public site API.
type Server struct {
	search    *searchuc.Service
	sitemap   *sitemapuc.Service
	analytics *analyticsuc.Service
	contact   *contactuc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	sitemap *sitemapuc.Service,
	analytics *analyticsuc.Service,
	contact *contactuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:    search,
		sitemap:   sitemap,
		analytics: analytics,
		contact:   contact,
		health:    health,
		logger:    logger,
	}
}

// Router assembles the route tree. Admin routes are gated by bearer auth
// over adminKeys; everything else is public.
func (s *Server) Router(adminKeys []string) chi.Router {
	r := chi.NewRouter()

	// Inside the router so the route pattern is resolved by the time the
	// metrics labels are read.
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/sitemap.xml", s.Sitemap)
	r.Get("/robots.txt", s.Robots)

	r.Route("/api", func(api chi.Router) {
		api.Get("/search", s.UnifiedSearch)
		api.Get("/search/insights", s.SearchInsights)
		api.Get("/search/credentials", s.SearchCredentials)
		api.Post("/analytics/events", s.RecordEvent)
		api.Post("/contact", s.SubmitContact)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(BearerAuthMiddleware(adminKeys))
			admin.Post("/cache/bust", s.BustCache)
		})
	})

	return r
}

// UnifiedSearch handles GET /api/search.
func (s *Server) UnifiedSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := searchuc.Request{
		Query: params.Get("q"),
		Type:  params.Get("type"),
		Page:  queryInt(params, "page", searchuc.DefaultPage, 0),
		Limit: queryInt(params, "limit", searchuc.DefaultLimit, maxPageLimit),
	}

	resp, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleSearchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, unifiedToDTO(resp, strings.TrimSpace(req.Query)))
}

// SearchInsights handles GET /api/search/insights.
func (s *Server) SearchInsights(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("q")
	page := queryInt(params, "page", searchuc.DefaultPage, 0)
	limit := queryInt(params, "limit", searchuc.DefaultLimit, maxPageLimit)

	resp, err := s.search.SearchInsights(r.Context(), query, page, limit)
	if err != nil {
		s.handleSearchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, insightsToDTO(resp, strings.TrimSpace(query)))
}

// SearchCredentials handles GET /api/search/credentials.
func (s *Server) SearchCredentials(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("q")
	filters := domain.CredentialFilters{
		Type:     params.Get("type"),
		Category: params.Get("category"),
	}
	page := queryInt(params, "page", searchuc.DefaultPage, 0)
	limit := queryInt(params, "limit", searchuc.DefaultLimit, maxPageLimit)

	resp, err := s.search.SearchCredentials(r.Context(), query, filters, page, limit)
	if err != nil {
		s.handleSearchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, credentialsToDTO(resp, strings.TrimSpace(query)))
}

// Sitemap handles GET /sitemap.xml.
func (s *Server) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := s.sitemap.Sitemap(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("sitemap render failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "sitemap unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Robots handles GET /robots.txt.
func (s *Server) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.sitemap.Robots())
}

// BustCache handles POST /api/admin/cache/bust. The next sitemap request
// re-renders from the store.
func (s *Server) BustCache(w http.ResponseWriter, r *http.Request) {
	if err := s.sitemap.Bust(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error("cache bust failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "cache bust failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordEvent handles POST /api/analytics/events.
func (s *Server) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Path      string `json:"path"`
		Referrer  string `json:"referrer"`
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ev, err := s.analytics.Record(r.Context(), analyticsuc.Input{
		Name:      req.Name,
		Path:      req.Path,
		Referrer:  req.Referrer,
		SessionID: req.SessionID,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"id": ev.ID})
}

// SubmitContact handles POST /api/contact.
func (s *Server) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := s.contact.Submit(r.Context(), contactuc.Input{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logger.FromContext(r.Context()).Error("contact submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save submission")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": sub.ID})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// handleSearchError maps search sentinels to HTTP statuses. Anything not
// recognized is an internal failure with a generic body.
func (s *Server) handleSearchError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	if errors.Is(err, domain.ErrInvalidQuery) {
		log.Warn("search query rejected", zap.Error(err))
		writeError(w, http.StatusBadRequest, domain.ErrInvalidQuery.Error())
		return
	}

	log.Error("search failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "search is temporarily unavailable")
}

// queryInt parses a positive integer query parameter; non-numeric or
// out-of-range values fall back to def. max of 0 means uncapped.
func queryInt(params url.Values, key string, def, max int) int {
	raw := params.Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || (max > 0 && n > max) {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
