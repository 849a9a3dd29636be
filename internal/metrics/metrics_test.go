// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
	}{
		{"predict day", "POST", "/predict/day", "200"},
		{"bad feedback", "POST", "/feedback", "400"},
		{"health", "GET", "/health", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 5*time.Millisecond)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("api_requests_total = %v, want %v", after, before+1)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordPrediction(t *testing.T) {
	ok := PredictionsTotal.WithLabelValues("day", "success")
	bad := PredictionsTotal.WithLabelValues("day", "invalid_input")
	okBefore, badBefore := testutil.ToFloat64(ok), testutil.ToFloat64(bad)

	RecordPrediction("day", "success", time.Millisecond, 321)
	RecordPrediction("day", "invalid_input", 0, 0)

	if got := testutil.ToFloat64(ok); got != okBefore+1 {
		t.Errorf("success = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(bad); got != badBefore+1 {
		t.Errorf("invalid_input = %v, want %v", got, badBefore+1)
	}
	if n := testutil.CollectAndCount(PredictedDemand); n < 1 {
		t.Errorf("predicted demand series = %d, want >= 1", n)
	}
}

func TestSetModelLoaded(t *testing.T) {
	SetModelLoaded("hour", true)
	if got := testutil.ToFloat64(ModelLoaded.WithLabelValues("hour")); got != 1 {
		t.Errorf("loaded = %v, want 1", got)
	}
	SetModelLoaded("hour", false)
	if got := testutil.ToFloat64(ModelLoaded.WithLabelValues("hour")); got != 0 {
		t.Errorf("unloaded = %v, want 0", got)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	errs := StoreErrors.WithLabelValues("add_review")
	before := testutil.ToFloat64(errs)

	RecordStoreOperation("add_review", time.Millisecond, nil)
	RecordStoreOperation("add_review", time.Millisecond, errors.New("disk full"))

	if got := testutil.ToFloat64(errs); got != before+1 {
		t.Errorf("store errors = %v, want %v", got, before+1)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	c := ChatRepliesTotal.WithLabelValues("fallback")
	before := testutil.ToFloat64(c)

	const goroutines = 20
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordChatReply("fallback")
			RecordAPIRequest("POST", "/chat", "200", time.Millisecond)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(c); got != before+goroutines {
		t.Errorf("chat replies = %v, want %v", got, before+goroutines)
	}
}
