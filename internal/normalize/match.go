package normalize

import (
	"encoding/base64"
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"study-game/internal/domain"
)

// The pairs cell has been through at least one CSV round-trip and shows
// up in the wild as: a JSON array of pair objects, an object of parallel
// arrays, either of those JSON-encoded into a string (sometimes twice),
// base64-wrapped, or with HTML-entity and doubled-quote artifacts. The
// extractor runs a short pipeline of unwrapping steps and stops at the
// first one that yields a usable array or object. New encoding variants
// keep surfacing in uploaded content; add a step rather than widening an
// existing one.

// extractMatch produces the matching variant. When every strategy fails
// it returns an empty matching question (zero-length columns) so one
// malformed row cannot take down the rest of the pack.
func extractMatch(r Record, idx int) *domain.Question {
	q := base(r, idx, domain.KindMatch)

	left, right, amap := matchParts(r)

	n := len(left)
	if n == 0 || n != len(right) {
		q.Left, q.Right, q.AnswerMap = []string{}, []string{}, []int{}
		return q
	}

	if !validAnswerMap(amap, n, len(right)) {
		amap = deriveAnswerMap(left, right)
	}
	q.Left, q.Right, q.AnswerMap = left, right, amap
	return q
}

// matchParts tries the extraction strategies in order: the pairs field
// in any serialization, then pipe-delimited or native-array left/right
// columns.
func matchParts(r Record) (left, right []string, amap []int) {
	if v, ok := r.value("pairs", "Pairs"); ok {
		if pv, ok := parsePairs(v); ok {
			left, right, amap = interpretPairs(pv)
			if len(left) > 0 {
				return left, right, amap
			}
		}
	}

	left = listField(r, "left", "Left")
	right = listField(r, "right", "Right")
	if v, ok := r.value("answerMap", "map", "index"); ok {
		switch t := v.(type) {
		case string:
			amap = parseIntList(t)
		case []any:
			amap = intsOf(t)
		}
	}
	return left, right, amap
}

// listField reads a column that may be a native array or a delimited
// string.
func listField(r Record, keys ...string) []string {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []any:
		return stringsOf(t)
	case string:
		return ParseList(t)
	}
	return nil
}

// parsePairs resolves the pairs field to a JSON array or object.
// Already-decoded values pass through; strings run the unwrap pipeline.
func parsePairs(v any) (any, bool) {
	switch t := v.(type) {
	case []any:
		if len(t) > 0 {
			return t, true
		}
	case map[string]any:
		if len(t) > 0 {
			return t, true
		}
	case string:
		return unwrapPairsString(t)
	}
	return nil, false
}

// pairsSteps is the ordered unwrap pipeline. Each step either produces a
// decoded array/object or passes; the first success short-circuits.
var pairsSteps = []func(string) (any, bool){
	parseJSONValue,
	parseUnquoted,
	parseBase64,
}

func unwrapPairsString(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	for _, step := range pairsSteps {
		if v, ok := step(s); ok {
			return v, true
		}
	}
	return nil, false
}

// parseJSONValue parses s as JSON, accepting only arrays and objects.
// A result that is itself a JSON string is parsed once more to handle
// double-encoded cells.
func parseJSONValue(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	if inner, isStr := v.(string); isStr {
		if err := json.Unmarshal([]byte(inner), &v); err != nil {
			return nil, false
		}
	}
	switch v.(type) {
	case []any, map[string]any:
		return v, true
	}
	return nil, false
}

// parseUnquoted strips stray surrounding quotes and undoes the quote
// artifacts CSV tooling leaves behind (&quot;, \" and "" doubling), then
// re-parses.
func parseUnquoted(s string) (any, bool) {
	s = strings.Trim(s, `'"`)
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `""`, `"`)
	return parseJSONValue(s)
}

var base64Re = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)

// parseBase64 sniffs for a base64-wrapped JSON payload: base64 alphabet
// only and a length that is a multiple of four. The decoded text must
// itself parse, otherwise the step passes.
func parseBase64(s string) (any, bool) {
	compact := strings.Join(strings.Fields(s), "")
	if len(compact) < 8 || len(compact)%4 != 0 || !base64Re.MatchString(compact) {
		return nil, false
	}
	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, false
	}
	return parseJSONValue(strings.TrimSpace(string(decoded)))
}

var (
	leftKeys  = []string{"left", "Left", "l", "L", "from", "key", "src"}
	rightKeys = []string{"right", "Right", "r", "R", "to", "value", "dst"}
	mapKeys   = []string{"answerMap", "map", "index", "match", "mapping"}
)

// interpretPairs reads a decoded pairs value: either an object of
// parallel arrays or an array of pair objects, with per-element key
// aliases in both casings.
func interpretPairs(v any) (left, right []string, amap []int) {
	switch t := v.(type) {
	case map[string]any:
		return interpretParallel(t)
	case []any:
		return interpretPairList(t)
	}
	return nil, nil, nil
}

func interpretParallel(m map[string]any) (left, right []string, amap []int) {
	left = arrayAt(m, "left", "Left", "l", "L")
	right = arrayAt(m, "right", "Right", "r", "R", "value", "values")
	for _, k := range mapKeys {
		if v, ok := m[k]; ok {
			switch t := v.(type) {
			case []any:
				amap = intsOf(t)
			case string:
				amap = parseIntList(t)
			}
			break
		}
	}
	return left, right, amap
}

func arrayAt(m map[string]any, keys ...string) []string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if arr, isArr := v.([]any); isArr {
				return stringsOf(arr)
			}
		}
	}
	return nil
}

func interpretPairList(arr []any) (left, right []string, amap []int) {
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		l := strings.TrimSpace(fieldAt(m, leftKeys))
		r := strings.TrimSpace(fieldAt(m, rightKeys))
		if l == "" || r == "" {
			continue
		}
		left = append(left, l)
		right = append(right, r)
	}
	// a pair list never carries an explicit map; it gets derived
	return left, right, nil
}

func fieldAt(m map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := scalarString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// deriveAnswerMap pairs columns by case- and whitespace-insensitive text
// equality: for each left item, the first right item with the same
// normalized text, or -1 when none matches. This only works for content
// whose pairs are textually identical on both sides; semantically linked
// but differently-worded pairs need an explicit answerMap in the source.
func deriveAnswerMap(left, right []string) []int {
	amap := make([]int, len(left))
	for i, l := range left {
		amap[i] = -1
		ln := domain.NormText(l)
		for j, r := range right {
			if domain.NormText(r) == ln {
				amap[i] = j
				break
			}
		}
	}
	return amap
}

// validAnswerMap accepts an explicit map only when it covers every left
// item with in-range right indices; anything else falls back to
// derivation.
func validAnswerMap(amap []int, n, rightLen int) bool {
	if len(amap) != n {
		return false
	}
	for _, idx := range amap {
		if idx < 0 || idx >= rightLen {
			return false
		}
	}
	return true
}
