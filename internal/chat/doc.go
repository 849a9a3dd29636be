// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

// Package chat implements the dashboard assistant behind POST /chat.
//
// Replies come from Gemini (google.golang.org/genai) when GEMINI_API_KEY is
// set. The generator is wrapped in a sony/gobreaker circuit breaker whose
// state is exported as circuit_breaker_state{name="gemini-chat"}. Any failure
// falls back to a fixed keyword table matched with an Aho-Corasick automaton;
// the first keyword in table order that appears in the message wins.
package chat
