// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

/*
Package services adapts RideWise components to suture.Service.

  - HTTPServerService: runs *http.Server, shutting down gracefully on cancel.
  - DashboardHubService: runs the dashboard WebSocket hub loop.
  - StoreGCService: reclaims badger value log space on an interval.

Each wrapper depends on a small interface (HTTPServer, ContextHub,
GarbageCollector) rather than the concrete type, so the package does not
import api, websocket or store.
*/
package services
