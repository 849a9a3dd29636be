// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ridewise/internal/logging"
)

// backends returns a fresh store per backend.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	bs, err := OpenBadgerStore(filepath.Join(t.TempDir(), "badger"))
	if err != nil {
		t.Fatalf("OpenBadgerStore: %v", err)
	}
	t.Cleanup(func() { _ = bs.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": bs,
	}
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want int
		err  error
	}{
		{float64(1), 1, nil},
		{float64(5), 5, nil},
		{4.0, 4, nil},
		{"3", 3, nil},
		{" 2 ", 2, nil},
		{json.Number("4"), 4, nil},
		{float64(0), 0, ErrInvalidRating},
		{float64(6), 0, ErrInvalidRating},
		{"9", 0, ErrInvalidRating},
		{3.5, 0, ErrRatingNotInteger},
		{"abc", 0, ErrRatingNotInteger},
		{"3.0", 0, ErrRatingNotInteger},
		{true, 0, ErrRatingNotInteger},
		{nil, 0, ErrRatingNotInteger},
	}

	for _, tt := range tests {
		got, err := ParseRating(tt.in)
		if !errors.Is(err, tt.err) {
			t.Errorf("ParseRating(%v) err = %v, want %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRating(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFeedback(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			fb, err := s.AddFeedback(ctx, Feedback{Rating: 4, Comment: "Great predictions"})
			if err != nil {
				t.Fatalf("AddFeedback: %v", err)
			}
			if _, err := time.Parse(TimestampLayout, fb.Timestamp); err != nil {
				t.Errorf("timestamp %q: %v", fb.Timestamp, err)
			}

			for i := 1; i <= 6; i++ {
				if _, err := s.AddFeedback(ctx, Feedback{Rating: i%5 + 1, Comment: string(rune('a' + i))}); err != nil {
					t.Fatalf("AddFeedback %d: %v", i, err)
				}
			}

			all, err := s.ListFeedback(ctx)
			if err != nil {
				t.Fatalf("ListFeedback: %v", err)
			}
			if len(all) != 7 || all[0].Comment != "Great predictions" || all[0].Rating != 4 {
				t.Fatalf("ListFeedback = %+v", all)
			}

			recent, err := s.RecentFeedback(ctx, 5)
			if err != nil {
				t.Fatalf("RecentFeedback: %v", err)
			}
			if len(recent) != 5 {
				t.Fatalf("len(recent) = %d, want 5", len(recent))
			}
			if recent[0].Comment != "g" || recent[4].Comment != "c" {
				t.Errorf("recent order = %q..%q, want g..c", recent[0].Comment, recent[4].Comment)
			}

			if _, err := s.AddFeedback(ctx, Feedback{Rating: 0, Comment: "x"}); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("rating 0: err = %v", err)
			}
			if _, err := s.AddFeedback(ctx, Feedback{Rating: 3, Comment: "  "}); !errors.Is(err, ErrEmptyComment) {
				t.Errorf("blank comment: err = %v", err)
			}
		})
	}
}

func TestReviews(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id1, err := s.AddReview(ctx, Review{UserEmail: "a@x.io", Rating: 5, Comment: "first", Timestamp: "2026-01-01T10:00:00.000000"})
			if err != nil {
				t.Fatalf("AddReview: %v", err)
			}
			id2, _ := s.AddReview(ctx, Review{UserEmail: "a@x.io", Rating: 3, Comment: "second", Timestamp: "2026-01-03T10:00:00.000000"})
			idB, _ := s.AddReview(ctx, Review{UserEmail: "a@x.io:b", Rating: 4, Comment: "other", Timestamp: "2026-01-02T10:00:00.000000"})
			if id1 != 1 || id2 != 2 || idB != 1 {
				t.Errorf("ids = %d, %d, %d; want 1, 2, 1", id1, id2, idB)
			}

			mine, err := s.ListReviews(ctx, "a@x.io")
			if err != nil {
				t.Fatalf("ListReviews: %v", err)
			}
			if len(mine) != 2 || mine[0].Comment != "first" || mine[1].ID != 2 {
				t.Errorf("ListReviews = %+v", mine)
			}

			none, _ := s.ListReviews(ctx, "nobody@x.io")
			if none == nil || len(none) != 0 {
				t.Errorf("ListReviews(unknown) = %#v, want empty slice", none)
			}

			all, err := s.ListAllReviews(ctx)
			if err != nil {
				t.Fatalf("ListAllReviews: %v", err)
			}
			want := []string{"second", "other", "first"}
			if len(all) != len(want) {
				t.Fatalf("ListAllReviews = %+v", all)
			}
			for i, c := range want {
				if all[i].Comment != c {
					t.Errorf("all[%d] = %q, want %q", i, all[i].Comment, c)
				}
			}
			if all[1].UserEmail != "a@x.io:b" {
				t.Errorf("user_email = %q", all[1].UserEmail)
			}

			if _, err := s.AddReview(ctx, Review{UserEmail: " ", Rating: 3, Comment: "x"}); !errors.Is(err, ErrEmptyEmail) {
				t.Errorf("blank email: err = %v", err)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := s.GetSummary(ctx)
			if err != nil || got != nil {
				t.Fatalf("GetSummary before set = %+v, %v", got, err)
			}

			want := Summary{PredictedDemand: 412.5, PredictionType: "Daily", WeatherImpact: "Low", PeakStatus: "Peak", Timestamp: Now()}
			if err := s.SetSummary(ctx, want); err != nil {
				t.Fatalf("SetSummary: %v", err)
			}
			got, err = s.GetSummary(ctx)
			if err != nil || got == nil || *got != want {
				t.Errorf("GetSummary = %+v, %v; want %+v", got, err, want)
			}
		})
	}
}

func TestStore_ConcurrentReviewIDs(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			const n = 50
			ids := make(chan int, n)
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					id, err := s.AddReview(ctx, Review{UserEmail: "same@x.io", Rating: 3, Comment: "c"})
					if err != nil {
						t.Error(err)
					}
					ids <- id
				}()
			}
			wg.Wait()
			close(ids)

			seen := make(map[int]bool)
			for id := range ids {
				if seen[id] {
					t.Errorf("duplicate id %d", id)
				}
				seen[id] = true
			}
			for i := 1; i <= n; i++ {
				if !seen[i] {
					t.Errorf("missing id %d", i)
				}
			}

			stored, err := s.ListReviews(ctx, "same@x.io")
			if err != nil {
				t.Fatalf("ListReviews: %v", err)
			}
			if len(stored) != n {
				t.Errorf("stored %d reviews, want %d", len(stored), n)
			}
		})
	}
}

func TestStore_ConcurrentFeedback(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			const n = 50
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := s.AddFeedback(ctx, Feedback{Rating: 4, Comment: "busy"}); err != nil {
						t.Error(err)
					}
				}()
			}
			wg.Wait()

			all, err := s.ListFeedback(ctx)
			if err != nil {
				t.Fatalf("ListFeedback: %v", err)
			}
			if len(all) != n {
				t.Errorf("stored %d feedback entries, want %d", len(all), n)
			}
		})
	}
}

func TestBadgerStore_ReviewIDsSurviveReopen(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "badger")
	ctx := context.Background()

	s, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := s.AddReview(ctx, Review{UserEmail: "r@x.io", Rating: 4, Comment: "c"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	id, err := s.AddReview(ctx, Review{UserEmail: "r@x.io", Rating: 4, Comment: "c"})
	if err != nil {
		t.Fatal(err)
	}
	if id != 3 {
		t.Errorf("id after reopen = %d, want 3", id)
	}
	other, err := s.AddReview(ctx, Review{UserEmail: "other@x.io", Rating: 4, Comment: "c"})
	if err != nil {
		t.Fatal(err)
	}
	if other != 1 {
		t.Errorf("first id for a new owner = %d, want 1", other)
	}
}

func TestRetryDelay(t *testing.T) {
	t.Parallel()

	for attempt := 1; attempt < maxTxnRetries; attempt++ {
		base := retryBaseDelay << (attempt - 1)
		for i := 0; i < 20; i++ {
			d := retryDelay(attempt)
			if d < base || d >= 2*base {
				t.Fatalf("retryDelay(%d) = %v, want [%v, %v)", attempt, d, base, 2*base)
			}
		}
	}
}

func TestSleepCtx_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepCtx(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepCtx = %v, want context.Canceled", err)
	}
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "badger")
	ctx := context.Background()

	s, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.AddFeedback(ctx, Feedback{Rating: 5, Comment: "kept"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddReview(ctx, Review{UserEmail: "p@x.io", Rating: 2, Comment: "kept too"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	fb, _ := s.ListFeedback(ctx)
	if len(fb) != 1 || fb[0].Comment != "kept" {
		t.Errorf("feedback after reopen = %+v", fb)
	}

	// Sequence continues after reopen.
	if _, err := s.AddFeedback(ctx, Feedback{Rating: 1, Comment: "later"}); err != nil {
		t.Fatal(err)
	}
	recent, _ := s.RecentFeedback(ctx, 1)
	if len(recent) != 1 || recent[0].Comment != "later" {
		t.Errorf("recent after reopen = %+v", recent)
	}

	id, _ := s.AddReview(ctx, Review{UserEmail: "p@x.io", Rating: 4, Comment: "again"})
	if id != 2 {
		t.Errorf("review id after reopen = %d, want 2", id)
	}
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	s, err := NewStore("", "")
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("default backend = %T, want *MemoryStore", s)
	}

	if _, err := NewStore(BackendBadger, ""); err == nil {
		t.Error("badger without path should fail")
	}
	if _, err := NewStore("redis", ""); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestBadgerStore_CollectGarbageOnFreshDB(t *testing.T) {
	t.Parallel()

	s, err := OpenBadgerStore(filepath.Join(t.TempDir(), "badger"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	n, err := s.CollectGarbage(0.5)
	if err != nil {
		t.Fatalf("CollectGarbage: %v", err)
	}
	if n != 0 {
		t.Errorf("rewritten = %d on an empty value log", n)
	}
}

func TestBadgerLogger_ComponentField(t *testing.T) {
	prev := logging.Logger()
	t.Cleanup(func() { logging.SetLogger(prev) })

	var buf bytes.Buffer
	logging.SetLogger(logging.NewTestLogger(&buf))

	badgerLogger{}.Warningf("value log %s\n", "full")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["component"] != "badger" || entry["level"] != "warn" || entry["message"] != "value log full" {
		t.Errorf("entry = %v", entry)
	}
}
