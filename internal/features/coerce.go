// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package features

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultSeason and DefaultWeather are used when a categorical value is
// unknown or out of range.
const (
	DefaultSeason  = 1
	DefaultWeather = 1
)

var seasonNames = map[string]int{
	"spring": 1,
	"summer": 2,
	"fall":   3,
	"autumn": 3,
	"winter": 4,
}

var weatherNames = map[string]int{
	"clear":      1,
	"sunny":      1,
	"cloudy":     2,
	"mist":       2,
	"misty":      2,
	"light rain": 3,
	"light snow": 3,
	"rain":       3,
	"snow":       3,
	"heavy rain": 4,
	"storm":      4,
	"heavy snow": 4,
}

// Number coerces a JSON-decoded value to float64.
// Unparsable and non-finite values become 0.
func Number(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Flag coerces a 0/1 indicator. Anything other than a truthy value is 0.
func Flag(v any) float64 {
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y":
			return 1
		}
	}
	if Number(v) == 1 {
		return 1
	}
	return 0
}

// SeasonCode maps a season code or name to 1..4.
func SeasonCode(v any) int {
	return categorical(v, seasonNames, 4, DefaultSeason)
}

// WeatherCode maps a weather situation code or name to 1..4.
func WeatherCode(v any) int {
	return categorical(v, weatherNames, 4, DefaultWeather)
}

func categorical(v any, names map[string]int, maxCode, fallback int) int {
	if s, ok := v.(string); ok {
		key := strings.ToLower(strings.TrimSpace(s))
		if code, found := names[key]; found {
			return code
		}
	}

	f := Number(v)
	if f != math.Trunc(f) {
		return fallback
	}
	code := int(f)
	if code < 1 || code > maxCode {
		return fallback
	}
	return code
}

// IntValue parses an integer the way the weather-impact lookup expects:
// integral numbers and integer strings succeed, everything else fails.
func IntValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// Missing reports whether a request value counts as absent:
// nil, or a string that is empty after trimming.
func Missing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
