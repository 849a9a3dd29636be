// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

/*
Package middleware provides chi-compatible HTTP middleware.

Key Components:

  - RequestID: UUID request IDs, echoed in X-Request-ID and attached to
    the context so logging.Ctx includes them
  - AccessLog: one zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauges,
    labelled by chi route pattern

Typical stack, as wired by the api router:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

See Also:

  - internal/api: router and handlers
  - internal/metrics: Prometheus collector definitions
*/
package middleware
