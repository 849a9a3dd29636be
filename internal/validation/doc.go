// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use. Field names in messages
// come from the struct's json tags, so a failure on
//
//	type ReviewInput struct {
//	    UserEmail string `json:"user_email" validate:"notblank,max=254"`
//	    Rating    int    `json:"rating" validate:"rating"`
//	}
//
// reads "user_email must not be empty" or "rating must be between 1 and 5".
//
// Custom tags:
//   - rating: integer in [1, 5]
//   - notblank: string that is not empty after trimming whitespace
package validation
