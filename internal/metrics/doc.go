// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

/*
Package metrics provides Prometheus collectors for RideWise.

Collectors are registered on the default registry through promauto and are
exposed by the API at the configured metrics path (default /metrics):

	curl http://localhost:5000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by httprate (counter)

Prediction Metrics:
  - ridewise_predictions_total: Predictions by variant and outcome (counter)
  - ridewise_prediction_duration_seconds: Encode plus inference time (histogram)
  - ridewise_predicted_demand: Predicted rental counts (histogram)
  - ridewise_model_loaded: 1 when the variant's model is loaded (gauge)

Store Metrics:
  - ridewise_store_operation_duration_seconds (histogram)
  - ridewise_store_errors_total (counter)

Chat Metrics:
  - ridewise_chat_replies_total: Replies by source, gemini or fallback (counter)
  - ridewise_chat_upstream_duration_seconds (histogram)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels name, result (counter)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)

WebSocket Metrics:
  - websocket_connections (gauge)
  - websocket_messages_sent_total, websocket_messages_received_total (counter)
  - websocket_errors_total: Labels error_type (counter)

Example PromQL:

	# Fallback share of chat replies
	sum(rate(ridewise_chat_replies_total{source="fallback"}[5m]))
	  / sum(rate(ridewise_chat_replies_total[5m]))

	# p95 prediction latency
	histogram_quantile(0.95, rate(ridewise_prediction_duration_seconds_bucket[5m]))

All recording helpers are safe for concurrent use.
*/
package metrics
