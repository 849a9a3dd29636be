// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package features

// Variant identifies which regression model a request targets.
type Variant string

const (
	// Day predicts total rentals for a calendar day.
	Day Variant = "day"
	// Hour predicts rentals for a single hour of a day.
	Hour Variant = "hour"
)

// String returns the variant name.
func (v Variant) String() string {
	return string(v)
}

// Label returns the human label used in the dashboard summary.
func (v Variant) Label() string {
	if v == Hour {
		return "Hourly"
	}
	return "Daily"
}

// Request field names accepted from clients.
const (
	FieldDate       = "dteday"
	FieldHour       = "hr"
	FieldSeason     = "season"
	FieldHoliday    = "holiday"
	FieldWorkingDay = "workingday"
	FieldWeather    = "weathersit"
	FieldTemp       = "temp"
	FieldATemp      = "atemp"
	FieldHumidity   = "hum"
)

var dayInputFields = []string{
	FieldDate, FieldSeason, FieldHoliday, FieldWorkingDay,
	FieldWeather, FieldTemp, FieldATemp, FieldHumidity,
}

var hourInputFields = []string{
	FieldDate, FieldHour, FieldSeason, FieldHoliday, FieldWorkingDay,
	FieldWeather, FieldTemp, FieldATemp, FieldHumidity,
}

// dayFeatureNames is the declared column order of the daily model.
var dayFeatureNames = []string{
	"season", "holiday", "workingday", "weathersit", "temp", "atemp", "hum",
	"yr", "mnth", "weekday", "quarter", "is_weekend",
	"mnth_sin", "mnth_cos", "weekday_sin", "weekday_cos",
	"is_peak_season", "temp_humidity", "temp_windspeed", "weather_severity",
}

// hourFeatureNames is the declared column order of the hourly model.
var hourFeatureNames = []string{
	"season", "holiday", "workingday", "weathersit", "temp", "atemp", "hum", "windspeed", "hr",
	"yr", "mnth", "weekday", "quarter", "is_weekend",
	"mnth_sin", "mnth_cos", "weekday_sin", "weekday_cos", "hr_sin", "hr_cos",
	"is_peak_season", "temp_humidity", "temp_windspeed", "weather_severity",
}

// InputFields returns the allow-listed request fields for v, in the order
// used when reporting missing inputs.
func InputFields(v Variant) []string {
	if v == Hour {
		return append([]string(nil), hourInputFields...)
	}
	return append([]string(nil), dayInputFields...)
}

// FeatureNames returns the declared, ordered feature schema for v.
func FeatureNames(v Variant) []string {
	if v == Hour {
		return append([]string(nil), hourFeatureNames...)
	}
	return append([]string(nil), dayFeatureNames...)
}
