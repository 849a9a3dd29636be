// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

// Package logging provides centralized zerolog-based structured logging for RideWise.
//
// The package keeps one global logger configured at startup from the
// logging section of the service configuration:
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("dir", dir).Msg("Loading models")
//	logging.Ctx(r.Context()).Warn().Msg("Missing required inputs")
//
// Request handlers use Ctx so every line carries the request_id assigned by the
// API middleware. The slog adapter routes supervisor events from sutureslog
// into the same stream.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
