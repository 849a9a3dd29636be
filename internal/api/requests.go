// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

// Request structs validated with go-playground/validator tags. Bodies are
// decoded loosely first (ratings may arrive as strings, feature values as
// names or codes), normalized, then checked here.

package api

// HourRequest holds the normalized hour of an hourly prediction.
type HourRequest struct {
	Hour int `json:"hr" validate:"gte=0,lte=23"`
}

// FeedbackRequest is a normalized POST /feedback body.
type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"rating"`
	Comment string `json:"comment" validate:"notblank,max=5000"`
}

// ReviewRequest is a normalized POST /api/reviews body.
type ReviewRequest struct {
	UserEmail string `json:"user_email" validate:"notblank,max=320"`
	Rating    int    `json:"rating" validate:"rating"`
	Comment   string `json:"comment" validate:"notblank,max=5000"`
}

// ChatRequest is a normalized POST /chat body.
type ChatRequest struct {
	Message    string         `json:"message" validate:"notblank,max=4000"`
	Prediction map[string]any `json:"prediction,omitempty"`
}
