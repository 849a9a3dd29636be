// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package features

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want float64
	}{
		{0.5, 0.5},
		{3, 3},
		{" 2.5 ", 2.5},
		{"abc", 0},
		{json.Number("1.25"), 1.25},
		{true, 1},
		{nil, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{"NaN", 0},
		{[]any{1}, 0},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSeasonAndWeatherCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in              any
		season, weather int
	}{
		{1, 1, 1},
		{4, 4, 4},
		{"3", 3, 3},
		{9, DefaultSeason, DefaultWeather},
		{2.5, DefaultSeason, DefaultWeather},
		{"winter", 4, DefaultWeather},
		{"Heavy Rain", DefaultSeason, 4},
		{"unknown", DefaultSeason, DefaultWeather},
	}
	for _, tt := range tests {
		if got := SeasonCode(tt.in); got != tt.season {
			t.Errorf("SeasonCode(%v) = %d, want %d", tt.in, got, tt.season)
		}
		if got := WeatherCode(tt.in); got != tt.weather {
			t.Errorf("WeatherCode(%v) = %d, want %d", tt.in, got, tt.weather)
		}
	}
}

func TestIntValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{2.0, 2, true},
		{2.9, 2, true},
		{"3", 3, true},
		{"3.5", 0, false},
		{"cloudy", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := IntValue(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("IntValue(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
