// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/ridewise/internal/config"
	"github.com/tomtom215/ridewise/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	config        *config.Config
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. cfg may be nil, which allows every origin and
// disables rate limiting.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	var mw *ChiMiddleware
	if cfg != nil {
		mw = NewChiMiddlewareFromSecurity(
			cfg.Security.CORSOrigins,
			cfg.Security.RateLimitReqs,
			cfg.Security.RateLimitWindow,
			cfg.Security.RateLimitDisabled,
		)
	} else {
		c := DefaultChiMiddlewareConfig()
		c.CORSAllowedOrigins = []string{"*"}
		c.RateLimitDisabled = true
		mw = NewChiMiddleware(c)
	}
	return &Router{handler: handler, config: cfg, chiMiddleware: mw}
}

// preflightPaths answer OPTIONS with 204. The CORS middleware passes
// preflights through after setting its headers.
var preflightPaths = []string{
	"/predict/day", "/predict/hour", "/feedback", "/feedback/recent",
	"/api/reviews", "/api/reviews/all", "/chat", "/health", "/dashboard/summary",
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer preflights
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeBadRequest, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed", nil)
	})

	// ========================
	// Read Endpoints
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders())

		r.Get("/health", router.handler.Health)
		r.Get("/dashboard/summary", router.handler.DashboardSummary)
		r.Get("/feedback", router.handler.ListFeedback)
		r.Get("/feedback/recent", router.handler.RecentFeedback)
		r.Get("/api/reviews", router.handler.ListReviews)
		r.Get("/api/reviews/all", router.handler.ListAllReviews)
	})

	// ========================
	// Write Endpoints
	// ========================
	// Rate limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(router.chiMiddleware.RateLimit())

		r.Post("/predict/day", router.handler.PredictDay)
		r.Post("/predict/hour", router.handler.PredictHour)
		r.Post("/feedback", router.handler.SubmitFeedback)
		r.Post("/api/reviews", router.handler.SubmitReview)
		r.Post("/chat", router.handler.Chat)
	})

	for _, path := range preflightPaths {
		r.Options(path, respondNoContent)
	}

	// ========================
	// Dashboard Feed
	// ========================
	r.Get("/ws/dashboard", router.handler.DashboardWebSocket)

	// ========================
	// Prometheus
	// ========================
	if router.config == nil || router.config.Metrics.Enabled {
		path := "/metrics"
		if router.config != nil && router.config.Metrics.Path != "" {
			path = router.config.Metrics.Path
		}
		r.Handle(path, promhttp.Handler())
	}

	return r
}
