// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package features

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrInvalidDate is returned when dteday cannot be parsed.
	ErrInvalidDate = errors.New("invalid dteday format")

	// ErrAlignment is returned when the prepared vector does not match the
	// model's expected feature count.
	ErrAlignment = errors.New("feature alignment error")
)

// dateLayouts are tried in order when parsing dteday.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Input is a request payload restricted to the allow-listed fields.
type Input map[string]any

// Vector is an ordered feature vector ready for inference.
type Vector struct {
	Names  []string
	Values []float64
}

// Len returns the number of columns.
func (v Vector) Len() int {
	return len(v.Values)
}

// Get returns the value of the named column.
func (v Vector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Restrict copies the allow-listed fields of payload for variant v and
// reports which of them are missing, in allow-list order.
func Restrict(v Variant, payload map[string]any) (Input, []string) {
	fields := InputFields(v)
	in := make(Input, len(fields))
	var missing []string
	for _, f := range fields {
		val := payload[f]
		if Missing(val) {
			missing = append(missing, f)
			continue
		}
		in[f] = val
	}
	return in, missing
}

// ParseDate parses a dteday value.
func ParseDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: expected a date string, got %T", ErrInvalidDate, v)
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Encode derives every engineered feature for variant v from in.
// The result is keyed by feature name; it has no side effects and is
// identical for identical input.
func Encode(v Variant, in Input) (map[string]float64, error) {
	date, err := ParseDate(in[FieldDate])
	if err != nil {
		return nil, err
	}

	temp := Number(in[FieldTemp])
	hum := Number(in[FieldHumidity])
	weather := float64(WeatherCode(in[FieldWeather]))

	month := int(date.Month())
	weekday := mondayFirst(date.Weekday())

	f := map[string]float64{
		"season":     float64(SeasonCode(in[FieldSeason])),
		"holiday":    Flag(in[FieldHoliday]),
		"workingday": Flag(in[FieldWorkingDay]),
		"weathersit": weather,
		"temp":       temp,
		"atemp":      Number(in[FieldATemp]),
		"hum":        hum,

		"yr":         float64(date.Year()),
		"mnth":       float64(month),
		"weekday":    float64(weekday),
		"quarter":    float64((month-1)/3 + 1),
		"is_weekend": boolFloat(weekday >= 5),

		"is_peak_season":   boolFloat(month >= 6 && month <= 8),
		"temp_humidity":    temp * hum,
		"temp_windspeed":   0,
		"weather_severity": weather,
	}

	f["mnth_sin"], f["mnth_cos"] = cyclical(float64(month), 12)
	f["weekday_sin"], f["weekday_cos"] = cyclical(float64(weekday), 7)

	if v == Hour {
		hr := HourOf(in)
		f["hr"] = float64(hr)
		f["hr_sin"], f["hr_cos"] = cyclical(float64(hr), 24)
		f["windspeed"] = 0
	}

	return f, nil
}

// HourOf returns the request hour truncated to an integer.
func HourOf(in Input) int {
	return int(math.Trunc(Number(in[FieldHour])))
}

// Align orders produced features to expected. Expected names that were not
// produced are zero-filled; produced names that are not expected are dropped.
func Align(produced map[string]float64, expected []string) (Vector, error) {
	vec := Vector{
		Names:  make([]string, 0, len(expected)),
		Values: make([]float64, 0, len(expected)),
	}
	for _, name := range expected {
		vec.Names = append(vec.Names, name)
		vec.Values = append(vec.Values, produced[name])
	}

	if len(expected) == 0 || vec.Len() != len(expected) {
		return Vector{}, fmt.Errorf("%w: prepared %d features, expected %d", ErrAlignment, vec.Len(), len(expected))
	}
	return vec, nil
}

// Build encodes in for variant v and aligns it to expected.
func Build(v Variant, in Input, expected []string) (Vector, error) {
	produced, err := Encode(v, in)
	if err != nil {
		return Vector{}, err
	}
	return Align(produced, expected)
}

// mondayFirst converts time.Weekday (Sunday=0) to Monday=0 .. Sunday=6.
func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func cyclical(value, period float64) (sin, cos float64) {
	angle := 2 * math.Pi * value / period
	return math.Sin(angle), math.Cos(angle)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
