// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

// Package model loads trained demand regressors from JSON artifacts and
// evaluates them.
//
// Three kinds are supported:
//   - linear: intercept + dot(coefficients, x)
//   - forest: mean of the tree outputs
//   - gbm: base_score + learning_rate * sum of the tree outputs
//
// Trees are flat node arrays rooted at index 0. A node with a negative left
// index is a leaf; otherwise evaluation goes left when x[feature] <= threshold.
//
// Every artifact's feature_names must equal the declared schema of its
// variant (DaySchema, HourSchema). A mismatch leaves the registry slot empty
// and is reported through Registry.Status.
package model
