// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

// Package store persists user feedback, per-user reviews and the
// last-prediction summary.
//
// Two backends implement Store:
//   - memory: slices and maps behind a sync.RWMutex (default)
//   - badger: an embedded BadgerDB directory that survives restarts
//
// Badger keys:
//
//	feedback:<seq>              big-endian sequence, insertion order
//	review:<hex(email)>:<id>    big-endian per-owner id
//	summary                     the latest summary
//	meta:feedback_seq           last feedback sequence
//
// Review ids are allocated inside the write transaction, so concurrent
// writers for the same owner never share an id.
package store
