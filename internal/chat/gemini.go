// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

var (
	// ErrNoAPIKey is returned when no Gemini API key is configured.
	ErrNoAPIKey = errors.New("gemini api key not configured")

	// ErrEmptyReply is returned when the model answers with no text.
	ErrEmptyReply = errors.New("empty reply from model")
)

// SystemPrompt is sent as the system instruction on every call.
const SystemPrompt = "You are RideWise Assistant, an AI chatbot integrated into a bike-sharing analytics platform.\n\n" +
	"Your role:\n" +
	"- Help users understand bike-sharing demand patterns\n" +
	"- Explain how weather, time, season, and working days affect bike demand\n" +
	"- Provide clear, simple, and practical insights\n" +
	"- Answer like a data analyst, not a generic chatbot\n\n" +
	"Rules:\n" +
	"- Do not mention Gemini, Google, or AI models\n" +
	"- Keep responses concise, friendly, and professional\n" +
	"- Avoid hallucinated exact numbers; use reasonable analytical ranges\n" +
	"- If the question is unrelated, gently redirect to bike-sharing insights"

// Request is a single prompt to the upstream model.
type Request struct {
	System string
	Prompt string
}

// Generator produces a reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeminiConfig configures the Gemini generator.
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// GeminiGenerator calls the Gemini API through google.golang.org/genai.
type GeminiGenerator struct {
	client *genai.Client
	cfg    GeminiConfig
}

// NewGeminiGenerator creates a client for the Gemini API backend.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, cfg: cfg}, nil
}

// Generate sends req to the configured model.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.cfg.Temperature)),
		MaxOutputTokens: int32(g.cfg.MaxOutputTokens), //nolint:gosec // bounded by config validation
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
