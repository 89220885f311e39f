// Package api exposes legal lookups and enrichment over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/enrich"
	"github.com/sells-group/prospect-cli/internal/legal"
	"github.com/sells-group/prospect-cli/internal/model"
)

// Enricher runs the enrichment pipeline.
type Enricher interface {
	Run(ctx context.Context, req enrich.Request) (*model.EnrichmentResult, error)
}

// CacheReader reads cached enrichment results.
type CacheReader interface {
	Get(ctx context.Context, stableID string) *model.EnrichmentResult
}

// Deps are the router's collaborators. Ping is optional.
type Deps struct {
	Enricher Enricher
	Legal    enrich.LegalLookup
	Cache    CacheReader
	Ping     func(ctx context.Context) error
	// RequestTimeout bounds each request; zero means 60s.
	RequestTimeout time.Duration
}

type handler struct {
	deps Deps
}

// NewRouter builds the HTTP handler.
func NewRouter(deps Deps) http.Handler {
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 60 * time.Second
	}
	h := &handler{deps: deps}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(chimiddleware.Timeout(deps.RequestTimeout))

	r.Get("/health", h.health)

	r.Route("/v1/syndics/{siret}", func(r chi.Router) {
		r.Get("/legal", h.getLegal)
		r.Get("/enrichment", h.getEnrichment)
		r.Post("/enrichment", h.postEnrichment)
	})
	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.deps.Ping != nil {
		if err := h.deps.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getLegal(w http.ResponseWriter, r *http.Request) {
	if h.deps.Legal == nil {
		writeError(w, http.StatusServiceUnavailable, "legal lookup not configured")
		return
	}
	p, err := h.deps.Legal.Lookup(r.Context(), chi.URLParam(r, "siret"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, p)
	case errors.Is(err, legal.ErrInvalidSIRET):
		writeError(w, http.StatusBadRequest, "invalid siret")
	case errors.Is(err, legal.ErrNotFound):
		writeError(w, http.StatusNotFound, "company not found")
	case errors.Is(err, legal.ErrNoCredential):
		writeError(w, http.StatusServiceUnavailable, "pappers api key not configured")
	default:
		zap.L().Error("api: legal lookup failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "legal lookup failed")
	}
}

func (h *handler) getEnrichment(w http.ResponseWriter, r *http.Request) {
	siret := strings.TrimSpace(chi.URLParam(r, "siret"))
	var result *model.EnrichmentResult
	if h.deps.Cache != nil {
		result = h.deps.Cache.Get(r.Context(), siret)
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "no enrichment cached")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type enrichmentRequest struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	Website   string `json:"website"`
	Email     string `json:"email"`
	SkipLegal bool   `json:"skip_legal"`
}

func (h *handler) postEnrichment(w http.ResponseWriter, r *http.Request) {
	var body enrichmentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	req := enrich.Request{
		Identity: model.CompanyIdentity{
			StableID:    strings.TrimSpace(chi.URLParam(r, "siret")),
			DisplayName: body.Name,
			CityHint:    strings.TrimSpace(body.City),
		},
		Website:   strings.TrimSpace(body.Website),
		Email:     strings.TrimSpace(body.Email),
		SkipLegal: body.SkipLegal,
	}
	result, err := h.deps.Enricher.Run(r.Context(), req)
	if err != nil {
		if errors.Is(err, enrich.ErrMissingStableID) {
			writeError(w, http.StatusBadRequest, "siret is required")
			return
		}
		zap.L().Error("api: enrichment failed", zap.String("siret", req.Identity.StableID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "enrichment failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("api: write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("api: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
	})
}
