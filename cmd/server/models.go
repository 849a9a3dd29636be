// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package main

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ridewise/internal/config"
	"github.com/tomtom215/ridewise/internal/features"
	"github.com/tomtom215/ridewise/internal/model"
)

// errModelsUnavailable is returned by "models check" when any slot fails.
var errModelsUnavailable = errors.New("one or more models failed to load")

func newModelsCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect model artifacts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Load both model artifacts and report their status",
		Long: `Load the day and hour artifacts exactly as "serve" would, validate
their feature schemas and print one JSON status object per variant.
Exits non-zero if either model cannot be loaded.`,
		Example: `  ridewise models check
  MODEL_DIR=/srv/models ridewise models check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return checkModels(cmd, c.cfg)
		},
	})
	return cmd
}

// modelsReport is the output of "models check".
type modelsReport struct {
	Day  model.Status `json:"day"`
	Hour model.Status `json:"hour"`
}

func checkModels(cmd *cobra.Command, cfg *config.Config) error {
	registry := model.NewRegistry()
	loadErr := registry.Load(cfg.Models.DayPath(), cfg.Models.HourPath())

	report := modelsReport{
		Day:  registry.Status(features.Day),
		Hour: registry.Status(features.Hour),
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(out)); err != nil {
		return err
	}

	if loadErr != nil {
		return fmt.Errorf("%w: %w", errModelsUnavailable, loadErr)
	}
	return nil
}
