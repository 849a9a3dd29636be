// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/ridewise/internal/config"
	"github.com/tomtom215/ridewise/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.Error().Err(err).Msg("ridewise exited with error")
		os.Exit(1)
	}
}

// cli carries state shared by subcommands once PersistentPreRunE has run.
type cli struct {
	configPath string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:     "ridewise",
		Short:   "Bike demand prediction service",
		Version: version,
		Long: `RideWise serves daily and hourly bike rental demand predictions from
pre-trained regression models, collects feedback and reviews, and answers
dashboard questions through a chat assistant.`,
		PersistentPreRunE: c.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (overrides CONFIG_PATH)")
	root.SetVersionTemplate("ridewise {{.Version}}\n")

	root.AddCommand(newServeCommand(c))
	root.AddCommand(newModelsCommand(c))
	return root
}

// setup loads configuration and initializes logging before any subcommand.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, c.configPath); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	return nil
}
