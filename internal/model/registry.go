// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tomtom215/ridewise/internal/features"
	"github.com/tomtom215/ridewise/internal/logging"
)

// ErrSchemaMismatch is returned when an artifact's feature_names differ from
// the declared schema of its variant.
var ErrSchemaMismatch = errors.New("model schema mismatch")

// DaySchema returns the declared feature order of the daily model.
func DaySchema() []string { return features.FeatureNames(features.Day) }

// HourSchema returns the declared feature order of the hourly model.
func HourSchema() []string { return features.FeatureNames(features.Hour) }

// ValidateSchema checks that got matches the declared schema for v exactly,
// names and order.
func ValidateSchema(v features.Variant, got []string) error {
	want := features.FeatureNames(v)
	if len(got) != len(want) {
		return fmt.Errorf("%w: %s model has %d features, expected %d", ErrSchemaMismatch, v, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: %s feature %d is %q, expected %q", ErrSchemaMismatch, v, i, got[i], want[i])
		}
	}
	return nil
}

// LoadFile reads, validates and builds the model for variant v.
func LoadFile(v features.Variant, path string) (Regressor, error) {
	a, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateSchema(v, a.FeatureNames); err != nil {
		return nil, err
	}
	return New(a)
}

// Status describes one registry slot.
type Status struct {
	Variant      features.Variant `json:"variant"`
	Path         string           `json:"path"`
	Loaded       bool             `json:"loaded"`
	Name         string           `json:"name,omitempty"`
	Kind         Kind             `json:"kind,omitempty"`
	FeatureCount int              `json:"feature_count"`
	Error        string           `json:"error,omitempty"`
}

// Registry holds the day and hour models. A slot whose artifact failed to
// load stays empty and the failure is kept for reporting.
type Registry struct {
	mu     sync.RWMutex
	models map[features.Variant]Regressor
	status map[features.Variant]Status
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[features.Variant]Regressor),
		status: make(map[features.Variant]Status),
	}
}

// Load loads both variants. Failures are logged and recorded; the returned
// error joins every failure so callers that require both models can act on it.
func (r *Registry) Load(dayPath, hourPath string) error {
	return errors.Join(
		r.LoadVariant(features.Day, dayPath),
		r.LoadVariant(features.Hour, hourPath),
	)
}

// LoadVariant loads a single variant from path.
func (r *Registry) LoadVariant(v features.Variant, path string) error {
	m, err := LoadFile(v, path)

	r.mu.Lock()
	defer r.mu.Unlock()

	st := Status{Variant: v, Path: path}
	if err != nil {
		delete(r.models, v)
		st.Error = err.Error()
		r.status[v] = st
		logging.Error().Err(err).Str("variant", v.String()).Str("path", path).Msg("Failed to load model")
		return fmt.Errorf("load %s model: %w", v, err)
	}

	r.models[v] = m
	st.Loaded = true
	st.Name = m.Name()
	st.Kind = m.Kind()
	st.FeatureCount = len(m.FeatureNames())
	r.status[v] = st
	logging.Info().
		Str("variant", v.String()).
		Str("kind", string(m.Kind())).
		Int("features", st.FeatureCount).
		Msg("Model loaded")
	return nil
}

// Set installs m for variant v. Intended for tests and embedding.
func (r *Registry) Set(v features.Variant, m Regressor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[v] = m
	r.status[v] = Status{
		Variant:      v,
		Loaded:       true,
		Name:         m.Name(),
		Kind:         m.Kind(),
		FeatureCount: len(m.FeatureNames()),
	}
}

// Get returns the model for v, if loaded.
func (r *Registry) Get(v features.Variant) (Regressor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[v]
	return m, ok
}

// Loaded reports whether v has a model.
func (r *Registry) Loaded(v features.Variant) bool {
	_, ok := r.Get(v)
	return ok
}

// FeatureCount returns the feature count of v's model, or 0 when unloaded.
func (r *Registry) FeatureCount(v features.Variant) int {
	m, ok := r.Get(v)
	if !ok {
		return 0
	}
	return len(m.FeatureNames())
}

// Status returns the slot status for v.
func (r *Registry) Status(v features.Variant) Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.status[v]
	if !ok {
		return Status{Variant: v}
	}
	return st
}
