// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

// Package features turns a prediction request into the ordered numeric
// vector a demand model consumes.
//
// The pipeline is pure:
//
//	in, missing := features.Restrict(features.Day, payload)
//	vec, err := features.Build(features.Day, in, model.FeatureNames())
//
// Restrict keeps only the allow-listed fields of the variant. Encode derives
// calendar, cyclical and interaction features from dteday and the weather
// fields. Align orders the result to the model schema, zero-filling absent
// columns and dropping extras.
//
// Weekdays are numbered Monday=0 through Sunday=6, so Saturday and Sunday
// are the weekend.
package features
