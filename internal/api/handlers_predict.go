// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/tomtom215/ridewise/internal/features"
	"github.com/tomtom215/ridewise/internal/logging"
	"github.com/tomtom215/ridewise/internal/metrics"
	"github.com/tomtom215/ridewise/internal/store"
)

// Prediction outcomes recorded in ridewise_predictions_total.
const (
	outcomeSuccess         = "success"
	outcomeInvalidInput    = "invalid_input"
	outcomeModelNotLoaded  = "model_not_loaded"
	outcomeAlignmentError  = "alignment_error"
	outcomePredictionError = "prediction_error"
)

// Demand thresholds for peak_status.
const (
	peakThreshold   = 400
	normalThreshold = 200
)

// PredictionResponse is the body of a successful prediction.
type PredictionResponse struct {
	Prediction float64 `json:"prediction"`
}

// PredictDay handles POST /predict/day.
func (h *Handler) PredictDay(w http.ResponseWriter, r *http.Request) {
	h.predict(w, r, features.Day)
}

// PredictHour handles POST /predict/hour.
func (h *Handler) PredictHour(w http.ResponseWriter, r *http.Request) {
	h.predict(w, r, features.Hour)
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request, v features.Variant) {
	start := time.Now()
	fail := func(status int, code, message, outcome string, err error) {
		metrics.RecordPrediction(v.String(), outcome, time.Since(start), 0)
		respondError(w, r, status, code, message, err)
	}

	payload, err := decodeObject(r)
	if err != nil {
		fail(http.StatusBadRequest, ErrCodeBadRequest, msgNoBody, outcomeInvalidInput, err)
		return
	}

	in, missing := features.Restrict(v, payload)
	if len(missing) > 0 {
		fail(http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("Missing required inputs: %v", missing), outcomeInvalidInput, nil)
		return
	}

	if v == features.Hour {
		if apiErr := validateRequest(&HourRequest{Hour: features.HourOf(in)}); apiErr != nil {
			fail(http.StatusBadRequest, apiErr.Code, apiErr.Message, outcomeInvalidInput, nil)
			return
		}
	}

	m, ok := h.models.Get(v)
	if !ok {
		fail(http.StatusInternalServerError, ErrCodeModelNotLoaded,
			modelNotLoadedMessage(v), outcomeModelNotLoaded, nil)
		return
	}

	vec, err := features.Build(v, in, m.FeatureNames())
	switch {
	case errors.Is(err, features.ErrInvalidDate):
		fail(http.StatusBadRequest, ErrCodeValidation, sentence(err), outcomeInvalidInput, nil)
		return
	case errors.Is(err, features.ErrAlignment):
		fail(http.StatusInternalServerError, ErrCodeAlignment, sentence(err), outcomeAlignmentError, err)
		return
	case err != nil:
		fail(http.StatusInternalServerError, ErrCodeInternalError, err.Error(), outcomePredictionError, err)
		return
	}

	raw, err := m.Predict(vec.Values)
	if err != nil {
		fail(http.StatusInternalServerError, ErrCodePredictionFailed,
			"Prediction failed: "+err.Error(), outcomePredictionError, err)
		return
	}

	floored := clampDemand(raw)
	demand := roundDemand(floored)
	metrics.RecordPrediction(v.String(), outcomeSuccess, time.Since(start), demand)

	summary := store.Summary{
		PredictedDemand: demand,
		PredictionType:  v.Label(),
		WeatherImpact:   weatherImpact(in[features.FieldWeather]),
		PeakStatus:      peakStatus(floored),
		Timestamp:       store.Now(),
	}
	h.publishSummary(r, summary)

	logging.Ctx(r.Context()).Info().
		Str("variant", v.String()).
		Float64("prediction", demand).
		Msg("Prediction served")

	respondJSON(w, http.StatusOK, PredictionResponse{Prediction: demand})
}

// publishSummary stores the summary and pushes it to dashboard clients.
// A store failure is logged; it does not fail the prediction.
func (h *Handler) publishSummary(r *http.Request, summary store.Summary) {
	if h.store != nil {
		opStart := time.Now()
		err := h.store.SetSummary(r.Context(), summary)
		metrics.RecordStoreOperation("set_summary", time.Since(opStart), err)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to store dashboard summary")
		}
	}
	if h.wsHub != nil {
		h.wsHub.BroadcastSummary(summary)
	}
}

// clampDemand floors negative output at zero.
func clampDemand(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// roundDemand rounds to two decimals for responses and the summary.
func roundDemand(v float64) float64 {
	return math.Round(v*100) / 100
}

func modelNotLoadedMessage(v features.Variant) string {
	if v == features.Hour {
		return "Hour model not loaded"
	}
	return "Day model not loaded"
}

// weatherImpact maps the raw weathersit value: 1 is Low, 2 is Medium, any
// other integer is High. Values that are not integers report Medium.
func weatherImpact(raw any) string {
	code, ok := features.IntValue(raw)
	if !ok {
		return "Medium"
	}
	switch code {
	case 1:
		return "Low"
	case 2:
		return "Medium"
	default:
		return "High"
	}
}

// peakStatus classifies the truncated demand. It takes the unrounded value,
// so 400.996 is Normal even though it is reported as 401.
func peakStatus(demand float64) string {
	switch n := int(demand); {
	case n > peakThreshold:
		return "Peak"
	case n > normalThreshold:
		return "Normal"
	default:
		return "Off-Peak"
	}
}
