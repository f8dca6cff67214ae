package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args are the decoded JSON arguments of a call.
type Args map[string]interface{}

// String returns the argument as a string. Non-string scalars are formatted;
// a missing or null argument reports false.
func (a Args) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// OptionalString returns the trimmed argument, or "" when absent.
func (a Args) OptionalString(key string) string {
	s, _ := a.String(key)
	return strings.TrimSpace(s)
}

// Require returns a required string argument. An empty string is a valid
// value; only a missing or null key is an error.
func (a Args) Require(tool, key string) (string, error) {
	s, ok := a.String(key)
	if !ok {
		return "", &ValidationError{Tool: tool, Argument: key}
	}
	return s, nil
}

// Int returns the argument as an int, truncating fractions. JSON numbers and
// numeric strings are accepted; anything else yields def.
func (a Args) Int(key string, def int) int {
	switch v := a[key].(type) {
	case float64:
		return truncateFloat(v, def)
	case float32:
		return truncateFloat(float64(v), def)
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return truncateFloat(f, def)
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return truncateFloat(f, def)
		}
	}
	return def
}

func truncateFloat(f float64, def int) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(math.Trunc(f))
}

// Strings returns a string or an array of strings as a slice. Blank and
// non-string elements are dropped.
func (a Args) Strings(key string) []string {
	var out []string
	switch v := a[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, e := range v {
			if s, ok := e.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
