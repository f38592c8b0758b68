// Package app wires middleware and routes into the HTTP handler.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/httpserver"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/observability"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Rate limit mutating endpoints. The generate route gets a budget above
	// the backend timeout instead of the default request deadline, so the
	// proxied call can run to its own timeout and still answer.
	r.Group(func(wr chi.Router) {
		wr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		wr.With(httpserver.TimeoutMiddleware(30 * time.Second)).Post("/v1/extract", srv.ExtractHandler())
		wr.With(httpserver.TimeoutMiddleware(cfg.GenerateTimeout + 5*time.Second)).Post("/v1/generate", srv.GenerateHandler())
		wr.With(httpserver.TimeoutMiddleware(30 * time.Second)).Post("/v1/export", srv.ExportHandler())
	})
	// Read-only endpoints
	r.Get("/v1/backend-health", srv.BackendHealthHandler())

	// Health and metrics
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })

	// Browser UI
	srv.MountUI(r)

	return httpserver.SecurityHeaders(r)
}
