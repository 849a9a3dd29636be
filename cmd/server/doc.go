// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

/*
Command ridewise runs the RideWise bike demand prediction service.

# Commands

	ridewise serve          run the HTTP API under the supervisor tree
	ridewise models check   load both model artifacts and print their status

# Startup

"serve" wires components in this order:

 1. Configuration: .env files, then Koanf v2 (defaults, YAML file, environment)
 2. Logging: zerolog, configured from LOG_LEVEL / LOG_FORMAT
 3. Store: memory or badger (STORE_BACKEND, STORE_PATH)
 4. Models: day and hour artifacts from MODEL_DIR; a failed load leaves the
    slot empty and is reported by /health
 5. Chat: Gemini behind a circuit breaker when GEMINI_API_KEY is set,
    keyword fallback otherwise
 6. Supervisor tree: store GC, dashboard hub, HTTP server

# Configuration

Common environment variables:

	PORT=5000
	CORS_ORIGINS=http://localhost:3000
	MODEL_DIR=saved_models
	STORE_BACKEND=badger
	STORE_PATH=data/ridewise
	GEMINI_API_KEY=...

The API key is never logged and has no default.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests for up to SHUTDOWN_TIMEOUT, dashboard clients receive a close frame
and the store is closed last.
*/
package main
