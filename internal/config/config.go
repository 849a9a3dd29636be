// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package config

import (
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Models   ModelsConfig   `koanf:"models"`
	Store    StoreConfig    `koanf:"store"`
	Chat     ChatConfig     `koanf:"chat"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// ModelsConfig locates the exported regression model artifacts.
type ModelsConfig struct {
	Dir      string `koanf:"dir"`
	DayFile  string `koanf:"day_file"`
	HourFile string `koanf:"hour_file"`
}

// DayPath returns the full path of the daily model artifact.
func (m ModelsConfig) DayPath() string {
	return filepath.Join(m.Dir, m.DayFile)
}

// HourPath returns the full path of the hourly model artifact.
func (m ModelsConfig) HourPath() string {
	return filepath.Join(m.Dir, m.HourFile)
}

// StoreConfig selects the persistence backend for feedback, reviews
// and the dashboard summary.
type StoreConfig struct {
	Backend string `koanf:"backend"` // memory or badger
	Path    string `koanf:"path"`    // badger data directory

	// GCInterval is how often the badger value log is garbage collected.
	// Zero disables the collector.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// ChatConfig configures the chat assistant.
// An empty APIKey disables the remote model; replies come from the keyword table.
type ChatConfig struct {
	APIKey          string        `koanf:"api_key"`
	Model           string        `koanf:"model"`
	Temperature     float64       `koanf:"temperature"`
	MaxOutputTokens int           `koanf:"max_output_tokens"`
	Timeout         time.Duration `koanf:"timeout"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// EnvFiles lists the dotenv files loaded before configuration is read.
// Later files do not override variables that are already set.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads dotenv files into the process environment.
// Missing files are ignored; variables already present in the
// environment are never overwritten.
func LoadEnvFiles(files ...string) {
	if len(files) == 0 {
		files = EnvFiles
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load reads .env files and then builds the layered configuration.
func Load() (*Config, error) {
	LoadEnvFiles()
	return LoadWithKoanf()
}
