// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/ridewise/internal/logging"
	"github.com/tomtom215/ridewise/internal/metrics"
)

// Reply sources.
const (
	SourceGemini   = "gemini"
	SourceFallback = "fallback"
)

// Assistant answers dashboard questions, preferring the upstream model and
// falling back to the keyword table on any failure.
type Assistant struct {
	gen     Generator // nil when no upstream is configured
	matcher *KeywordMatcher
	system  string
}

// NewAssistant builds an assistant. gen may be nil.
func NewAssistant(gen Generator) *Assistant {
	return &Assistant{
		gen:     gen,
		matcher: NewKeywordMatcher(FallbackTopics),
		system:  SystemPrompt,
	}
}

// NewFromConfig builds the Gemini generator behind a circuit breaker. A
// missing key or client failure yields a fallback-only assistant.
func NewFromConfig(ctx context.Context, cfg GeminiConfig) *Assistant {
	gen, err := NewGeminiGenerator(ctx, cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("Chat assistant running in fallback-only mode")
		return NewAssistant(nil)
	}
	logging.Info().Str("model", cfg.Model).Msg("Chat assistant using Gemini")
	return NewAssistant(NewCircuitBreakerGenerator(gen, DefaultBreakerSettings()))
}

// Enabled reports whether an upstream model is configured.
func (a *Assistant) Enabled() bool {
	return a.gen != nil
}

// Reply answers message. prediction is optional context rendered ahead of
// the question. The returned source is SourceGemini or SourceFallback.
func (a *Assistant) Reply(ctx context.Context, message string, prediction map[string]any) (string, string) {
	if a.gen != nil {
		reply, err := a.gen.Generate(ctx, Request{
			System: a.system,
			Prompt: BuildPrompt(message, prediction),
		})
		if err == nil {
			metrics.RecordChatReply(SourceGemini)
			return reply, SourceGemini
		}
		logging.Ctx(ctx).Warn().Err(err).Msg("[/chat] Gemini call failed, using fallback")
	}

	metrics.RecordChatReply(SourceFallback)
	return a.matcher.Fallback(message), SourceFallback
}

// BuildPrompt prepends the prediction context, if any, to the question.
// Keys are sorted so the prompt is stable.
func BuildPrompt(message string, prediction map[string]any) string {
	if len(prediction) == 0 {
		return message
	}

	keys := make([]string, 0, len(prediction))
	for k := range prediction {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Context - model prediction:\n")
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %v", k, prediction[k])
	}
	b.WriteString("\n\nUser question: ")
	b.WriteString(message)
	return b.String()
}
