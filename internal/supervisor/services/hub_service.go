// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package services

import (
	"context"
)

// ContextHub is satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// DashboardHubService supervises the hub that pushes summary updates to
// dashboard clients. If the hub loop dies, suture restarts it and clients
// reconnect; the last summary is still in the store.
type DashboardHubService struct {
	hub  ContextHub
	name string
}

// NewDashboardHubService wraps hub as a supervised service.
func NewDashboardHubService(hub ContextHub) *DashboardHubService {
	return &DashboardHubService{
		hub:  hub,
		name: "dashboard-hub",
	}
}

// Serve implements suture.Service.
func (d *DashboardHubService) Serve(ctx context.Context) error {
	return d.hub.RunWithContext(ctx)
}

// String names the service in suture events.
func (d *DashboardHubService) String() string {
	return d.name
}
