// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearConfigEnv unsets every mapped variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()

	keys := []string{ConfigPathEnvVar}
	for k := range envMappings {
		keys = append(keys, strings.ToUpper(k))
	}

	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
}

// chdirTemp switches into a fresh temp dir so no stray config.yaml is found.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Models.DayPath() != filepath.Join("saved_models", "best_day_model.json") {
		t.Errorf("Models.DayPath() = %q", cfg.Models.DayPath())
	}
	if cfg.Models.HourPath() != filepath.Join("saved_models", "best_hour_model.json") {
		t.Errorf("Models.HourPath() = %q", cfg.Models.HourPath())
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Chat.Model != "gemini-1.5-flash" {
		t.Errorf("Chat.Model = %q, want gemini-1.5-flash", cfg.Chat.Model)
	}
	if cfg.Chat.MaxOutputTokens != 512 {
		t.Errorf("Chat.MaxOutputTokens = %d, want 512", cfg.Chat.MaxOutputTokens)
	}
	if cfg.Chat.APIKey != "" {
		t.Error("Chat.APIKey should be empty by default")
	}
	if len(cfg.Security.CORSOrigins) != 4 {
		t.Errorf("Security.CORSOrigins = %v, want 4 local dev origins", cfg.Security.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"PORT", "server.port"},
		{"HTTP_PORT", "server.port"},
		{"GEMINI_API_KEY", "chat.api_key"},
		{"MODEL_DIR", "models.dir"},
		{"STORE_BACKEND", "store.backend"},
		{"STORE_GC_INTERVAL", "store.gc_interval"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	clearConfigEnv(t)
	dir := chdirTemp(t)

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 5000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(path)

		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		custom := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("server:\n  port: 5000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, custom)

		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("CONFIG_PATH pointing nowhere falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	clearConfigEnv(t)
	chdirTemp(t)

	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CHAT_TIMEOUT", "5s")
	t.Setenv("STORE_GC_INTERVAL", "90s")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if !cfg.ChatEnabled() {
		t.Error("expected chat to be enabled with an API key")
	}
	if cfg.Store.GCInterval != 90*time.Second {
		t.Errorf("Store.GCInterval = %v, want 90s", cfg.Store.GCInterval)
	}
	if cfg.Chat.Timeout != 5*time.Second {
		t.Errorf("Chat.Timeout = %v, want 5s", cfg.Chat.Timeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}

	// Defaults survive for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Models.Dir != "saved_models" {
		t.Errorf("Models.Dir = %q, want saved_models (default)", cfg.Models.Dir)
	}
}

func TestLoadWithKoanfConfigFileAndEnvOverride(t *testing.T) {
	clearConfigEnv(t)
	dir := chdirTemp(t)

	content := `
server:
  port: 8888
  host: "127.0.0.1"
models:
  dir: "/opt/models"
store:
  backend: "badger"
  path: "/var/lib/ridewise"
logging:
  level: "warn"
`
	path := filepath.Join(dir, "ridewise.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want 8888 (file)", cfg.Server.Port)
	}
	if cfg.Models.Dir != "/opt/models" {
		t.Errorf("Models.Dir = %q, want /opt/models (file)", cfg.Models.Dir)
	}
	if cfg.Store.Backend != "badger" || cfg.Store.Path != "/var/lib/ridewise" {
		t.Errorf("Store = %+v, want badger at /var/lib/ridewise", cfg.Store)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env override)", cfg.Logging.Level)
	}
	if cfg.Models.DayFile != "best_day_model.json" {
		t.Errorf("Models.DayFile = %q, want default", cfg.Models.DayFile)
	}
}

func TestLoadWithKoanfValidationFailure(t *testing.T) {
	clearConfigEnv(t)
	chdirTemp(t)

	t.Setenv("STORE_BACKEND", "postgres")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for unknown store backend")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	clearConfigEnv(t)
	dir := chdirTemp(t)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\nMODEL_DIR=models\n"), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Setenv("MODEL_DIR", "from-env")
	os.Unsetenv("GEMINI_API_KEY")
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })

	LoadEnvFiles(filepath.Join(dir, ".env"), filepath.Join(dir, ".env.missing"))

	if got := os.Getenv("GEMINI_API_KEY"); got != "from-dotenv" {
		t.Errorf("GEMINI_API_KEY = %q, want from-dotenv", got)
	}
	if got := os.Getenv("MODEL_DIR"); got != "from-env" {
		t.Errorf("MODEL_DIR = %q, dotenv must not override the real environment", got)
	}
}
