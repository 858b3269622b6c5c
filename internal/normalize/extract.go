package normalize

import (
	"regexp"
	"strings"

	"study-game/internal/domain"
)

var letterRe = regexp.MustCompile(`(?i)^[ABCD]$`)

// extractMCQ assembles the multiple-choice variant. Choices come from a
// choices array when present, otherwise from the four discrete choiceA..D
// columns; the two sources are never merged. A degenerate row with no
// choices still yields a valid (ungradable) question.
func extractMCQ(r Record, idx int) *domain.Question {
	q := base(r, idx, domain.KindMCQ)

	if v, ok := r.value("choices"); ok {
		if arr, isArr := v.([]any); isArr && len(arr) > 0 {
			q.Choices = stringsOf(arr)
		}
	}
	if q.Choices == nil {
		a, b, c, d := r.str("choiceA"), r.str("choiceB"), r.str("choiceC"), r.str("choiceD")
		if a != "" || b != "" || c != "" || d != "" {
			// keep all four slots so answer letters keep their positions
			q.Choices = []string{a, b, c, d}
		} else {
			q.Choices = []string{}
		}
	}

	answer := strings.TrimSpace(r.str("answer"))
	if letterRe.MatchString(answer) {
		q.AnswerLetter = strings.ToUpper(answer)
	} else if answer != "" {
		q.AnswerText = answer
	}
	return q
}

// trueWords are the accepted spellings of a true answer; anything else
// non-empty counts as false, matching the source content's convention.
var trueWords = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "y": true,
}

func extractTrueFalse(r Record, idx int) *domain.Question {
	q := base(r, idx, domain.KindTrueFalse)

	if v, ok := r.value("answerBool"); ok {
		if b, isBool := v.(bool); isBool {
			q.AnswerBool = b
			return q
		}
	}
	q.AnswerBool = trueWords[strings.ToLower(strings.TrimSpace(r.str("answer")))]
	return q
}

// extractFill builds the normalized acceptable-answer list. An empty
// list is valid: the question simply always grades incorrect.
func extractFill(r Record, idx int) *domain.Question {
	q := base(r, idx, domain.KindFill)

	var raw []string
	if v, ok := r.value("answers"); ok {
		switch t := v.(type) {
		case []any:
			raw = stringsOf(t)
		case string:
			raw = ParseList(t)
		}
	}
	if len(raw) == 0 {
		if a := strings.TrimSpace(r.str("answer")); a != "" {
			raw = []string{a}
		}
	}

	q.Acceptable = make([]string, 0, len(raw))
	for _, a := range raw {
		if n := domain.NormText(a); n != "" {
			q.Acceptable = append(q.Acceptable, n)
		}
	}
	return q
}
