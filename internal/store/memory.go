// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package store

import (
	"context"
	"sync"
)

// MemoryStore keeps feedback, reviews and the summary in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	feedback []Feedback
	reviews  map[string][]Review
	owners   []string // first-seen order of review owners
	summary  *Summary
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reviews: make(map[string][]Review),
	}
}

// AddFeedback appends fb.
func (s *MemoryStore) AddFeedback(ctx context.Context, fb Feedback) (Feedback, error) {
	fb, err := prepareFeedback(fb)
	if err != nil {
		return fb, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, fb)
	return fb, nil
}

// ListFeedback returns all feedback in insertion order.
func (s *MemoryStore) ListFeedback(ctx context.Context) ([]Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Feedback, len(s.feedback))
	copy(out, s.feedback)
	return out, nil
}

// RecentFeedback returns up to n entries, newest first.
func (s *MemoryStore) RecentFeedback(ctx context.Context, n int) ([]Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []Feedback{}, nil
	}
	if n > len(s.feedback) {
		n = len(s.feedback)
	}
	out := make([]Feedback, 0, n)
	for i := len(s.feedback) - 1; i >= len(s.feedback)-n; i-- {
		out = append(out, s.feedback[i])
	}
	return out, nil
}

// AddReview appends r under its owner and returns the assigned id.
func (s *MemoryStore) AddReview(ctx context.Context, r Review) (int, error) {
	r, err := prepareReview(r)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.reviews[r.UserEmail]
	if !ok {
		s.owners = append(s.owners, r.UserEmail)
	}
	r.ID = len(existing) + 1
	s.reviews[r.UserEmail] = append(existing, r)
	return r.ID, nil
}

// ListReviews returns the reviews owned by email in insertion order.
func (s *MemoryStore) ListReviews(ctx context.Context, email string) ([]Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Review, len(s.reviews[email]))
	copy(out, s.reviews[email])
	return out, nil
}

// ListAllReviews returns every review, newest first.
func (s *MemoryStore) ListAllReviews(ctx context.Context) ([]Review, error) {
	s.mu.RLock()
	out := make([]Review, 0)
	for _, owner := range s.owners {
		out = append(out, s.reviews[owner]...)
	}
	s.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

// SetSummary replaces the summary.
func (s *MemoryStore) SetSummary(ctx context.Context, sum Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &sum
	return nil
}

// GetSummary returns a copy of the summary, or nil before the first prediction.
func (s *MemoryStore) GetSummary(ctx context.Context) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return nil, nil
	}
	sum := *s.summary
	return &sum, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
