// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/ridewise/internal/features"
	"github.com/tomtom215/ridewise/internal/metrics"
)

// HealthResponse reports model availability.
type HealthResponse struct {
	Status           string  `json:"status"`
	DayModelLoaded   bool    `json:"day_model_loaded"`
	DayFeatureCount  int     `json:"day_feature_count"`
	HourModelLoaded  bool    `json:"hour_model_loaded"`
	HourFeatureCount int     `json:"hour_feature_count"`
	ChatUpstream     bool    `json:"chat_upstream"`
	Uptime           float64 `json:"uptime"`
}

// SummaryResponse is the dashboard summary. Every field is null before the
// first successful prediction.
type SummaryResponse struct {
	PredictedDemand *float64 `json:"predicted_demand"`
	PredictionType  *string  `json:"prediction_type"`
	WeatherImpact   *string  `json:"weather_impact"`
	PeakStatus      *string  `json:"peak_status"`
	Timestamp       *string  `json:"timestamp"`
}

// Health handles GET /health.
//
// The process is "ok" whenever it can answer; missing models are reported
// through the loaded flags rather than the status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:           "ok",
		DayModelLoaded:   h.models.Loaded(features.Day),
		DayFeatureCount:  h.models.FeatureCount(features.Day),
		HourModelLoaded:  h.models.Loaded(features.Hour),
		HourFeatureCount: h.models.FeatureCount(features.Hour),
		ChatUpstream:     h.assistant.Enabled(),
		Uptime:           time.Since(h.startTime).Seconds(),
	})
}

// DashboardSummary handles GET /dashboard/summary.
func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s, err := h.store.GetSummary(r.Context())
	metrics.RecordStoreOperation("get_summary", time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load summary", err)
		return
	}

	var resp SummaryResponse
	if s != nil {
		resp = SummaryResponse{
			PredictedDemand: &s.PredictedDemand,
			PredictionType:  &s.PredictionType,
			WeatherImpact:   &s.WeatherImpact,
			PeakStatus:      &s.PeakStatus,
			Timestamp:       &s.Timestamp,
		}
	}
	respondJSON(w, http.StatusOK, resp)
}
