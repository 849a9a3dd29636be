// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package services

import (
	"context"
	"time"

	"github.com/tomtom215/ridewise/internal/logging"
)

// DefaultDiscardRatio is the fraction of stale data a value log file must
// hold before it is rewritten.
const DefaultDiscardRatio = 0.5

// GarbageCollector is satisfied by *store.BadgerStore.
type GarbageCollector interface {
	CollectGarbage(discardRatio float64) (int, error)
}

// StoreGCService periodically reclaims badger value log space.
// Collection errors are logged and the loop continues; they never crash
// the data layer.
type StoreGCService struct {
	store        GarbageCollector
	interval     time.Duration
	discardRatio float64
	name         string
}

// NewStoreGCService creates a collector that runs every interval.
// Non-positive intervals fall back to ten minutes.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:        store,
		interval:     interval,
		discardRatio: DefaultDiscardRatio,
		name:         "store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect()
		}
	}
}

func (s *StoreGCService) collect() {
	start := time.Now()
	n, err := s.store.CollectGarbage(s.discardRatio)
	if err != nil {
		logging.Warn().Err(err).Msg("Store garbage collection failed")
		return
	}
	if n > 0 {
		logging.Info().Int("rewritten", n).Dur("duration", time.Since(start)).Msg("Store value log compacted")
	}
}

// String names the service in suture events.
func (s *StoreGCService) String() string {
	return s.name
}
