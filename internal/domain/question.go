package domain

import (
	"strings"
	"unicode"
)

// Kind discriminates the four question variants.
type Kind string

const (
	KindMCQ       Kind = "mcq"
	KindTrueFalse Kind = "tf"
	KindFill      Kind = "fill"
	KindMatch     Kind = "match"
)

// Question is a normalized, gradable quiz question. Exactly one variant's
// field group is meaningful, selected by Kind; the rest stay zero. Stems,
// choices and explanations may carry lightweight [b]/[i]/[c=..] markup.
type Question struct {
	ID      string `json:"id"`
	Kind    Kind   `json:"type"`
	Stem    string `json:"stem"`
	Image   string `json:"image,omitempty"`
	Explain string `json:"explain,omitempty"`

	// mcq
	Choices      []string `json:"choices,omitempty"`
	AnswerLetter string   `json:"answerLetter,omitempty"` // "A".."D", or ""
	AnswerText   string   `json:"answerText,omitempty"`

	// tf
	AnswerBool bool `json:"answerBool,omitempty"`

	// fill: normalized acceptable answers; empty means ungradable
	Acceptable []string `json:"acceptable,omitempty"`

	// match: AnswerMap[i] is the index into Right pairing with Left[i].
	// A derived entry of -1 means no pairing could be established.
	Left      []string `json:"left,omitempty"`
	Right     []string `json:"right,omitempty"`
	AnswerMap []int    `json:"answerMap,omitempty"`
}

// Answer holds a user's response to a single question. The populated field
// depends on the question kind; a nil/empty field means unanswered.
type Answer struct {
	Choice *int   `json:"choice,omitempty"` // mcq: index into Choices
	Bool   *bool  `json:"bool,omitempty"`   // tf
	Text   string `json:"text,omitempty"`   // fill: raw user input
	Match  []*int `json:"match,omitempty"`  // match: one slot per left item, nil = unanswered
}

// Answered reports whether the answer carries any response at all for
// the given question kind.
func (a Answer) Answered(kind Kind) bool {
	switch kind {
	case KindMCQ:
		return a.Choice != nil
	case KindTrueFalse:
		return a.Bool != nil
	case KindFill:
		return strings.TrimSpace(a.Text) != ""
	case KindMatch:
		for _, slot := range a.Match {
			if slot != nil {
				return true
			}
		}
	}
	return false
}

// EmptyAnswer returns the unanswered Answer for a question, with a match
// answer pre-sized to the question's left column.
func EmptyAnswer(q *Question) Answer {
	if q.Kind == KindMatch {
		return Answer{Match: make([]*int, len(q.Left))}
	}
	return Answer{}
}

// NormText canonicalizes free text for comparison: lowercased, with all
// whitespace removed. Both fill-in acceptable answers and user input go
// through this before equality checks.
func NormText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// mcqLetters indexes answer letters for multiple-choice grading.
const mcqLetters = "ABCD"

// LetterIndex maps an answer letter "A".."D" to its choice index, or -1.
func LetterIndex(letter string) int {
	if len(letter) != 1 {
		return -1
	}
	return strings.Index(mcqLetters, strings.ToUpper(letter))
}

// LetterAt returns the answer letter for a choice index, or "?" when the
// index falls outside A-D.
func LetterAt(i int) string {
	if i < 0 || i >= len(mcqLetters) {
		return "?"
	}
	return string(mcqLetters[i])
}
