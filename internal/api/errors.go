// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

// Client-facing messages. Clients match on some of these strings, so they
// are kept stable.
const (
	msgNoBody            = "No JSON body provided"
	msgMissingFeedback   = "Missing rating or comment"
	msgMissingReview     = "Missing user_email, rating, or comment"
	msgEmailQueryMissing = "user_email query parameter required"
	msgRatingRange       = "Rating must be between 1 and 5"
	msgRatingInteger     = "Rating must be an integer"
	msgChatMessage       = `Expected JSON body with "message" field.`
)
