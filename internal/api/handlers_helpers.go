// RideWise - Bike Demand Prediction Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ridewise

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ridewise/internal/validation"
)

// maxBodyBytes caps request bodies. Every payload is a handful of fields.
const maxBodyBytes = 1 << 20

// errNoBody is returned when the request carries no usable JSON object.
var errNoBody = errors.New("no JSON body provided")

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// decodeObject reads the body as a JSON object. Numbers are kept as
// json.Number so integer-ness can be checked later. Empty bodies, invalid
// JSON, non-object values and trailing data all yield errNoBody.
func decodeObject(r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return nil, errNoBody
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoBody, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errNoBody
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errNoBody, err)
	}
	if payload == nil {
		return nil, errNoBody
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", errNoBody)
	}
	return payload, nil
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *validation.APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	return verr.ToAPIError()
}

// stringField returns payload[key] as trimmed text. Non-string scalars are
// formatted; null and absent keys return "".
func stringField(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// sentence upper-cases the first letter of an error message for display.
func sentence(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
