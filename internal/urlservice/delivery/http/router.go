package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter creates a new Chi router with all middleware and routes.
// Probes and metrics are registered outside the rate limited group.
func NewRouter(handler *Handler, logger *zap.Logger, rateLimiter *RateLimiter, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(EventMiddleware(handler.events))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)
	r.Get("/readyz", handler.Readyz)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware)

		r.Get("/{code}", handler.Redirect)

		r.Route("/api/v1", func(r chi.Router) {
			r.Post("/urls", handler.CreateShortURL)
			r.Get("/urls/{code}", handler.GetURLDetails)
			r.Post("/client-logs", handler.RelayClientLog)
		})
	})

	return r
}
