// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

/*
Package supervisor runs RideWise's long-lived components under suture v4.

The tree has three layers so a failure in one does not take down another:

	RootSupervisor ("ridewise")
	├── DataSupervisor ("data-layer")
	│   └── StoreGCService (badger backend only)
	├── MessagingSupervisor ("messaging-layer")
	│   └── DashboardHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

If the dashboard hub panics, suture restarts it while the API keeps serving
predictions, feedback and chat.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewDashboardHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Supervisor events (starts, failures, backoff) are logged through sutureslog,
which is fed by the zerolog-backed slog adapter in internal/logging.

# Configuration

TreeConfig zero values fall back to DefaultTreeConfig, which mirrors
suture's defaults: threshold 5, decay 30s, backoff 15s, shutdown timeout 10s.
*/
package supervisor
