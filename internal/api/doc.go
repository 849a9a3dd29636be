// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

/*
Package api provides the HTTP layer for RideWise.

Key Components:

  - Router: chi route table and middleware stack
  - Handler: request handlers for predictions, feedback, reviews, chat,
    health and the dashboard feed
  - respondJSON / respondError: the single place response bodies are built

Endpoints:

	POST /predict/day        {"prediction": n}
	POST /predict/hour       {"prediction": n}
	GET  /health             model availability
	GET  /dashboard/summary  last prediction summary, nulls before the first
	POST /feedback           201 {"status":"success"}
	GET  /feedback           {"feedback": [...]} in submission order
	GET  /feedback/recent    newest five
	POST /api/reviews        201 {"status":"success","review_id":n}
	GET  /api/reviews        ?user_email= required
	GET  /api/reviews/all    newest first
	POST /chat               {"reply": "..."}
	GET  /ws/dashboard       WebSocket summary_update feed
	GET  /metrics            Prometheus exposition

Every error body has the shape {"error": "...", "code": "..."} where code is
one of VALIDATION_ERROR, BAD_REQUEST, MODEL_NOT_LOADED, ALIGNMENT_ERROR,
PREDICTION_FAILED, INTERNAL_ERROR or RATE_LIMIT_EXCEEDED.

Middleware Stack:

	RequestID -> RealIP -> AccessLog -> recoverer -> CORS -> PrometheusMetrics
	  read group:  APISecurityHeaders
	  write group: APISecurityHeaders -> httprate (per IP)

Panics inside handlers are recovered and reported as 500 INTERNAL_ERROR.
*/
package api
