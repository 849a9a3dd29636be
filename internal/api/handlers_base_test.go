// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ridewise/internal/chat"
	"github.com/tomtom215/ridewise/internal/config"
	"github.com/tomtom215/ridewise/internal/features"
	"github.com/tomtom215/ridewise/internal/logging"
	"github.com/tomtom215/ridewise/internal/model"
	"github.com/tomtom215/ridewise/internal/store"
	ws "github.com/tomtom215/ridewise/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "error",
		Format: "console",
		Output: io.Discard,
	})
}

// fakeRegressor returns a fixed value and records the vector it was given.
type fakeRegressor struct {
	names []string
	value float64
	err   error
	panic bool
	got   []float64
}

func (f *fakeRegressor) Name() string           { return "fake" }
func (f *fakeRegressor) Kind() model.Kind       { return model.KindLinear }
func (f *fakeRegressor) FeatureNames() []string { return f.names }
func (f *fakeRegressor) Predict(x []float64) (float64, error) {
	if f.panic {
		panic("regressor exploded")
	}
	f.got = append([]float64(nil), x...)
	return f.value, f.err
}

// fakeGenerator is a scripted upstream chat model.
type fakeGenerator struct {
	reply string
	err   error
	last  chat.Request
}

func (g *fakeGenerator) Generate(_ context.Context, req chat.Request) (string, error) {
	g.last = req
	return g.reply, g.err
}

var errUpstream = errors.New("upstream unavailable")

func testConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"http://localhost:3000"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

type testEnv struct {
	handler *Handler
	store   store.Store
	models  *model.Registry
	hub     *ws.Hub
	server  http.Handler
}

type envOption func(*testEnv)

func withDayModel(m model.Regressor) envOption {
	return func(e *testEnv) { e.models.Set(features.Day, m) }
}

func withHourModel(m model.Regressor) envOption {
	return func(e *testEnv) { e.models.Set(features.Hour, m) }
}

func withAssistant(a *chat.Assistant) envOption {
	return func(e *testEnv) { e.handler.assistant = a }
}

// newTestEnv builds a handler over a memory store and a running hub.
func newTestEnv(t *testing.T, cfg *config.Config, opts ...envOption) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	t.Cleanup(func() { _ = st.Close() })

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	registry := model.NewRegistry()
	env := &testEnv{
		handler: NewHandler(st, registry, nil, hub, cfg),
		store:   st,
		models:  registry,
		hub:     hub,
	}
	for _, opt := range opts {
		opt(env)
	}
	env.server = NewRouter(env.handler, cfg).SetupChi()
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var body ErrorResponse
	decodeJSON(t, rec, &body)
	if body.Code != code {
		t.Errorf("code = %q, want %q", body.Code, code)
	}
	if message != "" && body.Error != message {
		t.Errorf("error = %q, want %q", body.Error, message)
	}
}

func TestNewHandler_Defaults(t *testing.T) {
	t.Parallel()

	h := NewHandler(store.NewMemoryStore(), nil, nil, nil, nil)
	if h.models == nil {
		t.Error("expected an empty registry")
	}
	if h.assistant == nil {
		t.Error("expected a fallback assistant")
	}
	if h.assistant.Enabled() {
		t.Error("default assistant should not have an upstream")
	}
	if h.startTime.IsZero() {
		t.Error("expected start time to be set")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a\nb", `a\x0ab`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"a":1}`, false},
		{"empty", "", true},
		{"whitespace", "   \n", true},
		{"invalid", "{not json", true},
		{"array", "[1,2]", true},
		{"null", "null", true},
		{"trailing whitespace", "{\"a\":1}\n  ", false},
		{"trailing garbage", `{"a":1} junk`, true},
		{"second object", `{"a":1}{"b":2}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			payload, err := decodeObject(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errNoBody) {
				t.Errorf("err = %v, want errNoBody", err)
			}
			if !tt.wantErr {
				if _, ok := payload["a"].(json.Number); !ok {
					t.Errorf("numbers should decode as json.Number, got %T", payload["a"])
				}
			}
		})
	}
}
