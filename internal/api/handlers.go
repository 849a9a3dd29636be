// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/ridewise/internal/chat"
	"github.com/tomtom215/ridewise/internal/config"
	"github.com/tomtom215/ridewise/internal/logging"
	"github.com/tomtom215/ridewise/internal/model"
	"github.com/tomtom215/ridewise/internal/store"
	ws "github.com/tomtom215/ridewise/internal/websocket"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade (this file)
//   - handlers_helpers.go: body decoding and shared helpers
//   - handlers_predict.go: /predict/day and /predict/hour
//   - handlers_feedback.go: /feedback and /api/reviews
//   - handlers_chat.go: /chat
//   - handlers_health.go: /health and /dashboard/summary
type Handler struct {
	store     store.Store
	models    *model.Registry
	assistant *chat.Assistant
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// assistant may be nil, in which case a fallback-only assistant is used.
// wsHub may be nil; predictions are then not broadcast and /ws/dashboard
// answers 503.
//
//	handler := api.NewHandler(st, registry, assistant, hub, cfg)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(":5000", router.SetupChi())
func NewHandler(st store.Store, models *model.Registry, assistant *chat.Assistant, wsHub *ws.Hub, cfg *config.Config) *Handler {
	if assistant == nil {
		assistant = chat.NewAssistant(nil)
	}
	if models == nil {
		models = model.NewRegistry()
	}
	return &Handler{
		store:     st,
		models:    models,
		assistant: assistant,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// CORS allow-list.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin on WebSocket handshakes.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// DashboardWebSocket upgrades GET /ws/dashboard and streams summary updates.
func (h *Handler) DashboardWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeInternalError, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
