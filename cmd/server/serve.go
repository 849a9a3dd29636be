// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/ridewise/internal/api"
	"github.com/tomtom215/ridewise/internal/chat"
	"github.com/tomtom215/ridewise/internal/config"
	"github.com/tomtom215/ridewise/internal/features"
	"github.com/tomtom215/ridewise/internal/logging"
	"github.com/tomtom215/ridewise/internal/metrics"
	"github.com/tomtom215/ridewise/internal/model"
	"github.com/tomtom215/ridewise/internal/store"
	"github.com/tomtom215/ridewise/internal/supervisor"
	"github.com/tomtom215/ridewise/internal/supervisor/services"
	ws "github.com/tomtom215/ridewise/internal/websocket"
)

// readHeaderTimeout bounds slow header delivery independently of ReadTimeout.
const readHeaderTimeout = 10 * time.Second

func newServeCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the prediction API, the dashboard WebSocket feed and store
maintenance under a supervisor tree. SIGINT or SIGTERM triggers a graceful
shutdown bounded by SHUTDOWN_TIMEOUT.

Missing model artifacts are not fatal: the affected endpoint answers
MODEL_NOT_LOADED and /health reports the slot as unloaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), c.cfg)
		},
	}
}

//nolint:gocyclo // sequential wiring of every component
func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("store", cfg.Store.Backend).
		Msg("Starting RideWise")

	st, err := store.NewStore(store.Backend(cfg.Store.Backend), cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	registry := loadModels(cfg)

	assistant := chat.NewFromConfig(ctx, chat.GeminiConfig{
		APIKey:          cfg.Chat.APIKey,
		Model:           cfg.Chat.Model,
		Temperature:     cfg.Chat.Temperature,
		MaxOutputTokens: cfg.Chat.MaxOutputTokens,
		Timeout:         cfg.Chat.Timeout,
	})
	if cfg.ChatEnabled() && !assistant.Enabled() {
		logging.Warn().Msg("GEMINI_API_KEY is set but the Gemini client could not be created")
	}

	hub := ws.NewHub()
	handler := api.NewHandler(st, registry, assistant, hub, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if gc, ok := st.(services.GarbageCollector); ok && cfg.Store.GCInterval > 0 {
		tree.AddDataService(services.NewStoreGCService(gc, cfg.Store.GCInterval))
	}
	tree.AddMessagingService(services.NewDashboardHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	err = tree.Serve(ctx)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	logging.Info().Msg("RideWise stopped")
	return nil
}

// loadModels loads both artifacts. Failures are logged by the registry and
// leave the slot empty.
func loadModels(cfg *config.Config) *model.Registry {
	registry := model.NewRegistry()
	if err := registry.Load(cfg.Models.DayPath(), cfg.Models.HourPath()); err != nil {
		logging.Warn().Err(err).Msg("Serving without every model loaded")
	}
	for _, v := range []features.Variant{features.Day, features.Hour} {
		metrics.SetModelLoaded(v.String(), registry.Loaded(v))
	}
	return registry
}
