package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseList splits a list-valued CSV cell. A cell starting with "[" is
// treated as a JSON array; anything else is pipe-delimited. Tokens are
// trimmed; an unparseable JSON cell yields an empty list.
func ParseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []any
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return nil
		}
		return stringsOf(arr)
	}
	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// parseIntList reads an index list from a CSV cell: a JSON array, or
// pipe/comma-delimited integers. Unparseable tokens are dropped.
func parseIntList(s string) []int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []any
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return nil
		}
		return intsOf(arr)
	}
	sep := "|"
	if !strings.Contains(s, "|") {
		sep = ","
	}
	var out []int
	for _, tok := range strings.Split(s, sep) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// intsOf extracts integer values from a JSON array, dropping anything
// that is not a whole number.
func intsOf(arr []any) []int {
	var out []int
	for _, v := range arr {
		switch t := v.(type) {
		case float64:
			out = append(out, int(t))
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}
