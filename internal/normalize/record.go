// Package normalize turns loosely-typed question rows, as they arrive
// from CSV-derived JSON, into the strongly-typed gradable question model.
// Normalization never fails: a row that defeats every extraction strategy
// degrades to the least-committal valid question instead of aborting the
// batch.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record is one raw question row. No field is guaranteed present, values
// may be strings, numbers, booleans, arrays or nested objects, and type
// tags may be absent or disagree with the fields actually populated.
type Record map[string]any

// DecodeRecords parses a JSON array of raw rows.
func DecodeRecords(data []byte) ([]Record, error) {
	var rows []Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode question rows: %w", err)
	}
	return rows, nil
}

// value returns the first present, non-nil field among keys.
func (r Record) value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// str renders the first present scalar field among keys as a string.
// Arrays and objects yield "".
func (r Record) str(keys ...string) string {
	v, ok := r.value(keys...)
	if !ok {
		return ""
	}
	return scalarString(v)
}

// has reports whether any of keys holds a non-empty value.
func (r Record) has(keys ...string) bool {
	v, ok := r.value(keys...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// typeHint returns the declared question type, lowercased, or "".
func (r Record) typeHint() string {
	return strings.ToLower(strings.TrimSpace(r.str("type", "kind", "questionType")))
}

// stem returns the display text of the prompt.
func (r Record) stem() string {
	return r.str("question", "stem")
}

// scalarString renders a scalar JSON value as a string. JSON numbers
// arrive as float64; integral ones must not print a trailing ".0".
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case json.Number:
		return t.String()
	}
	return ""
}

// stringsOf renders a JSON array's elements as strings, skipping
// non-scalar elements.
func stringsOf(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, scalarString(v))
	}
	return out
}
