// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package store

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/ridewise/internal/logging"
)

// Key layout
const (
	feedbackKeyPrefix = "feedback:"
	reviewKeyPrefix   = "review:"
	summaryKey        = "summary"
	feedbackSeqKey    = "meta:feedback_seq"
	reviewSeqPrefix   = "meta:review_seq:"
)

const (
	// maxTxnRetries bounds retries on badger.ErrConflict.
	maxTxnRetries  = 5
	retryBaseDelay = 5 * time.Millisecond
)

// BadgerStore persists feedback, reviews and the summary in BadgerDB.
// Writers are serialized by writeMu.
type BadgerStore struct {
	db      *badger.DB
	writeMu sync.Mutex
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	if path == "" {
		return nil, errors.New("badger store requires a path")
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = badgerLogger{}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// update runs fn in a read-write transaction, retrying on conflicts with
// jittered exponential backoff.
func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		if attempt > 0 {
			if waitErr := sleepCtx(ctx, retryDelay(attempt)); waitErr != nil {
				return waitErr
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("after %d attempts: %w", maxTxnRetries, err)
}

// retryDelay returns base*2^(attempt-1) plus up to the same again in jitter.
func retryDelay(attempt int) time.Duration {
	d := retryBaseDelay << (attempt - 1)
	return d + rand.N(d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// feedbackKey sorts numerically because the sequence is big-endian.
func feedbackKey(seq uint64) []byte {
	key := make([]byte, len(feedbackKeyPrefix)+8)
	copy(key, feedbackKeyPrefix)
	binary.BigEndian.PutUint64(key[len(feedbackKeyPrefix):], seq)
	return key
}

// reviewOwnerPrefix hex-encodes the email so no owner prefix can match
// another owner's keys.
func reviewOwnerPrefix(email string) []byte {
	return []byte(reviewKeyPrefix + hex.EncodeToString([]byte(email)) + ":")
}

func reviewSeqKey(email string) []byte {
	return []byte(reviewSeqPrefix + hex.EncodeToString([]byte(email)))
}

func reviewKey(email string, id int) []byte {
	prefix := reviewOwnerPrefix(email)
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], uint64(id))
	return key
}

// AddFeedback appends fb under the next sequence number.
func (s *BadgerStore) AddFeedback(ctx context.Context, fb Feedback) (Feedback, error) {
	fb, err := prepareFeedback(fb)
	if err != nil {
		return fb, err
	}

	data, err := json.Marshal(fb)
	if err != nil {
		return fb, fmt.Errorf("marshal feedback: %w", err)
	}

	err = s.update(ctx, func(txn *badger.Txn) error {
		seq, err := readCounter(txn, []byte(feedbackSeqKey))
		if err != nil {
			return err
		}
		seq++

		if err := txn.Set(feedbackKey(seq), data); err != nil {
			return fmt.Errorf("set feedback: %w", err)
		}
		return writeCounter(txn, []byte(feedbackSeqKey), seq)
	})
	if err != nil {
		return fb, err
	}
	return fb, nil
}

// ListFeedback returns all feedback in insertion order.
func (s *BadgerStore) ListFeedback(ctx context.Context) ([]Feedback, error) {
	out := make([]Feedback, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(feedbackKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var fb Feedback
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &fb)
			}); err != nil {
				return fmt.Errorf("decode feedback: %w", err)
			}
			out = append(out, fb)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return out, nil
}

// RecentFeedback returns up to n entries, newest first.
func (s *BadgerStore) RecentFeedback(ctx context.Context, n int) ([]Feedback, error) {
	out := make([]Feedback, 0)
	if n <= 0 {
		return out, nil
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(feedbackKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode Seek lands on the largest key <= the seek key.
		seek := append([]byte(feedbackKeyPrefix), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
		for it.Seek(seek); it.Valid() && len(out) < n; it.Next() {
			var fb Feedback
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &fb)
			}); err != nil {
				return fmt.Errorf("decode feedback: %w", err)
			}
			out = append(out, fb)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recent feedback: %w", err)
	}
	return out, nil
}

// AddReview stores r with the next id for its owner. The id comes from a
// per-owner counter read and written in the same transaction.
func (s *BadgerStore) AddReview(ctx context.Context, r Review) (int, error) {
	r, err := prepareReview(r)
	if err != nil {
		return 0, err
	}

	var id int
	err = s.update(ctx, func(txn *badger.Txn) error {
		seqKey := reviewSeqKey(r.UserEmail)
		seq, err := readCounter(txn, seqKey)
		if err != nil {
			return err
		}
		seq++
		if err := writeCounter(txn, seqKey, seq); err != nil {
			return fmt.Errorf("set review counter: %w", err)
		}

		r.ID = int(seq)
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal review: %w", err)
		}
		if err := txn.Set(reviewKey(r.UserEmail, r.ID), data); err != nil {
			return fmt.Errorf("set review: %w", err)
		}
		id = r.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListReviews returns the reviews owned by email in id order.
func (s *BadgerStore) ListReviews(ctx context.Context, email string) ([]Review, error) {
	reviews, err := s.scanReviews(reviewOwnerPrefix(email))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListAllReviews returns every review, newest first.
func (s *BadgerStore) ListAllReviews(ctx context.Context) ([]Review, error) {
	reviews, err := s.scanReviews([]byte(reviewKeyPrefix))
	if err != nil {
		return nil, fmt.Errorf("list all reviews: %w", err)
	}
	sortNewestFirst(reviews)
	return reviews, nil
}

func (s *BadgerStore) scanReviews(prefix []byte) ([]Review, error) {
	out := make([]Review, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r Review
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("decode review: %w", err)
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

// SetSummary replaces the summary.
func (s *BadgerStore) SetSummary(ctx context.Context, sum Summary) error {
	data, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return s.update(ctx, func(txn *badger.Txn) error {
		return txn.Set([]byte(summaryKey), data)
	})
}

// GetSummary returns the stored summary, or nil when none was written.
func (s *BadgerStore) GetSummary(ctx context.Context) (*Summary, error) {
	var sum *Summary
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(summaryKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get summary: %w", err)
		}
		return item.Value(func(val []byte) error {
			sum = &Summary{}
			return json.Unmarshal(val, sum)
		})
	})
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// CollectGarbage rewrites value log files until badger reports nothing left
// to reclaim and returns how many were rewritten.
func (s *BadgerStore) CollectGarbage(discardRatio float64) (int, error) {
	rewritten := 0
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return rewritten, nil
		}
		if err != nil {
			return rewritten, fmt.Errorf("value log gc: %w", err)
		}
		rewritten++
	}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func readCounter(txn *badger.Txn, key []byte) (uint64, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get counter: %w", err)
	}
	var n uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("counter %s has %d bytes", key, len(val))
		}
		n = binary.BigEndian.Uint64(val)
		return nil
	})
	return n, err
}

func writeCounter(txn *badger.Txn, key []byte, n uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, n)
	return txn.Set(key, buf)
}

// badgerLogger routes Badger's internal logging through zerolog. Info and
// debug chatter is demoted to debug.
type badgerLogger struct{}

// badgerLog is resolved per call so it follows logging.Init.
func badgerLog() *zerolog.Logger {
	l := logging.WithComponent("badger")
	return &l
}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	badgerLog().Error().Msgf(trimNewline(format), args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	badgerLog().Warn().Msgf(trimNewline(format), args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	badgerLog().Debug().Msgf(trimNewline(format), args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	badgerLog().Debug().Msgf(trimNewline(format), args...)
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}
