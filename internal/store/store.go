// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// TimestampLayout is local ISO-8601 with microseconds. Lexicographic order of
// formatted values equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Backend selects the storage implementation.
type Backend string

const (
	// BackendMemory keeps everything in process memory (default, not persistent).
	BackendMemory Backend = "memory"

	// BackendBadger persists to an embedded BadgerDB directory.
	BackendBadger Backend = "badger"
)

var (
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrRatingNotInteger = errors.New("rating must be an integer")
	ErrEmptyComment     = errors.New("comment must not be empty")
	ErrEmptyEmail       = errors.New("user_email must not be empty")
)

// Feedback is an anonymous rating left on the dashboard.
type Feedback struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
}

// Review is a rating owned by a user email. IDs are sequential per owner,
// starting at 1.
type Review struct {
	ID        int    `json:"id"`
	UserEmail string `json:"user_email"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
}

// Summary describes the most recent successful prediction.
type Summary struct {
	PredictedDemand float64 `json:"predicted_demand"`
	PredictionType  string  `json:"prediction_type"`
	WeatherImpact   string  `json:"weather_impact"`
	PeakStatus      string  `json:"peak_status"`
	Timestamp       string  `json:"timestamp"`
}

// FeedbackStore is an append-only feedback log.
type FeedbackStore interface {
	AddFeedback(ctx context.Context, fb Feedback) (Feedback, error)
	ListFeedback(ctx context.Context) ([]Feedback, error)
	// RecentFeedback returns at most n entries, newest first.
	RecentFeedback(ctx context.Context, n int) ([]Feedback, error)
}

// ReviewStore keeps reviews grouped by owner.
type ReviewStore interface {
	// AddReview stores r and returns the id assigned to it.
	AddReview(ctx context.Context, r Review) (int, error)
	ListReviews(ctx context.Context, email string) ([]Review, error)
	// ListAllReviews returns every review, newest timestamp first.
	ListAllReviews(ctx context.Context) ([]Review, error)
}

// SummaryStore holds the last-prediction summary. GetSummary returns nil
// before the first prediction.
type SummaryStore interface {
	SetSummary(ctx context.Context, s Summary) error
	GetSummary(ctx context.Context) (*Summary, error)
}

// Store is the full persistence surface used by the API.
type Store interface {
	FeedbackStore
	ReviewStore
	SummaryStore
	io.Closer
}

// Now returns the current local time formatted with TimestampLayout.
func Now() string {
	return time.Now().Format(TimestampLayout)
}

// ParseRating accepts JSON integers, integral floats and integer strings and
// returns ErrRatingNotInteger for anything else, including booleans and null.
func ParseRating(v any) (int, error) {
	var n int
	switch r := v.(type) {
	case float64:
		if math.IsNaN(r) || math.IsInf(r, 0) || r != math.Trunc(r) {
			return 0, ErrRatingNotInteger
		}
		n = int(r)
	case int:
		n = r
	case int64:
		n = int(r)
	case json.Number:
		i, err := strconv.Atoi(r.String())
		if err != nil {
			f, ferr := r.Float64()
			if ferr != nil || f != math.Trunc(f) {
				return 0, ErrRatingNotInteger
			}
			i = int(f)
		}
		n = i
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return 0, ErrRatingNotInteger
		}
		n = i
	default:
		return 0, ErrRatingNotInteger
	}
	if err := checkRating(n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkRating(n int) error {
	if n < 1 || n > 5 {
		return ErrInvalidRating
	}
	return nil
}

func prepareFeedback(fb Feedback) (Feedback, error) {
	if err := checkRating(fb.Rating); err != nil {
		return fb, err
	}
	if strings.TrimSpace(fb.Comment) == "" {
		return fb, ErrEmptyComment
	}
	if fb.Timestamp == "" {
		fb.Timestamp = Now()
	}
	return fb, nil
}

func prepareReview(r Review) (Review, error) {
	if strings.TrimSpace(r.UserEmail) == "" {
		return r, ErrEmptyEmail
	}
	if err := checkRating(r.Rating); err != nil {
		return r, err
	}
	if strings.TrimSpace(r.Comment) == "" {
		return r, ErrEmptyComment
	}
	if r.Timestamp == "" {
		r.Timestamp = Now()
	}
	return r, nil
}

// sortNewestFirst orders reviews by timestamp descending, keeping the
// relative order of equal timestamps.
func sortNewestFirst(reviews []Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Timestamp > reviews[j].Timestamp
	})
}

// NewStore opens the store for backend. An empty backend means memory.
func NewStore(backend Backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendBadger:
		return OpenBadgerStore(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
