package normalize

import (
	"strings"

	"study-game/internal/domain"
)

// A strategy pairs a pure predicate with the extractor producing that
// variant. Strategies are evaluated in a fixed order and the first match
// wins; the order is load-bearing because raw rows can populate fields
// of several kinds at once, and the matching markers are the most
// specific while multiple-choice is the catch-all.
type strategy struct {
	kind    domain.Kind
	applies func(Record) bool
	extract func(Record, int) *domain.Question
}

// strategies returns the classification table in precedence order:
// match, true/false, fill-in, then the multiple-choice fallback whose
// predicate always holds.
func strategies() []strategy {
	return []strategy{
		{domain.KindMatch, isMatch, extractMatch},
		{domain.KindTrueFalse, isTrueFalse, extractTrueFalse},
		{domain.KindFill, isFill, extractFill},
		{domain.KindMCQ, func(Record) bool { return true }, extractMCQ},
	}
}

// isMatch fires on the matching-specific markers: a populated pairs
// field in any of its serializations, parallel left+right columns, or an
// explicit type tag.
func isMatch(r Record) bool {
	switch r.typeHint() {
	case "match", "matching", "pair", "pairs":
		return true
	}
	if r.has("pairs") {
		return true
	}
	return r.has("left") && r.has("right")
}

// isTrueFalse fires on an explicit tag, an answer that can only be a
// truth value, or a literal boolean answer field.
func isTrueFalse(r Record) bool {
	switch r.typeHint() {
	case "tf", "truefalse", "true-false", "true_false", "boolean":
		return true
	}
	switch strings.ToLower(strings.TrimSpace(r.str("answer"))) {
	case "t", "f", "true", "false":
		return true
	}
	if v, ok := r.value("answerBool"); ok {
		if _, isBool := v.(bool); isBool {
			return true
		}
	}
	return false
}

// isFill fires on an explicit tag, or on a row that supplies an answer
// without supplying any choices.
func isFill(r Record) bool {
	switch r.typeHint() {
	case "fill", "fillin", "fill-in", "fill_in", "blank":
		return true
	}
	if hasChoices(r) {
		return false
	}
	return r.has("answer") || r.has("answers")
}

func hasChoices(r Record) bool {
	if r.has("choices") {
		return true
	}
	return r.has("choiceA") || r.has("choiceB") || r.has("choiceC") || r.has("choiceD")
}

// Classify decides which variant a raw row represents. It is pure and
// idempotent: the same row always yields the same kind.
func Classify(r Record) domain.Kind {
	for _, s := range strategies() {
		if s.applies(r) {
			return s.kind
		}
	}
	return domain.KindMCQ
}

// One normalizes a single row. idx is the row's position in the batch
// and supplies the fallback ID for rows without one. One never returns
// nil and never panics on malformed input.
func One(r Record, idx int) *domain.Question {
	for _, s := range strategies() {
		if s.applies(r) {
			q := s.extract(r, idx)
			return q
		}
	}
	return extractMCQ(r, idx) // unreachable; the table ends in a catch-all
}

// Normalize maps a raw batch into the typed question list. The output
// is produced once per quiz session and treated as immutable downstream.
func Normalize(rows []Record) []*domain.Question {
	out := make([]*domain.Question, 0, len(rows))
	for i, r := range rows {
		out = append(out, One(r, i))
	}
	return out
}

// base fills the attributes shared by all variants.
func base(r Record, idx int, kind domain.Kind) *domain.Question {
	id := strings.TrimSpace(r.str("id"))
	if id == "" {
		id = itoa(idx + 1)
	}
	return &domain.Question{
		ID:      id,
		Kind:    kind,
		Stem:    r.stem(),
		Image:   strings.TrimSpace(r.str("image")),
		Explain: r.str("explain"),
	}
}

func itoa(n int) string {
	return scalarString(float64(n))
}
