package domain

import (
	"strings"

	"study-game/internal/markup"
)

// Unanswered is the placeholder rendered for empty answers.
const Unanswered = "—"

// pairDelim joins the "left → right" fragments of a matching answer.
const pairDelim = " | "

// FormatYourAnswer renders a user's answer as plain text for the results
// view and report rows. Markup in choice/right-column text is stripped,
// never interpreted.
func FormatYourAnswer(q *Question, a Answer) string {
	switch q.Kind {
	case KindMCQ:
		if a.Choice == nil {
			return Unanswered
		}
		text := ""
		if *a.Choice >= 0 && *a.Choice < len(q.Choices) {
			text = q.Choices[*a.Choice]
		}
		return LetterAt(*a.Choice) + ". " + markup.Strip(text)

	case KindTrueFalse:
		if a.Bool == nil {
			return Unanswered
		}
		if *a.Bool {
			return "True"
		}
		return "False"

	case KindFill:
		t := strings.TrimSpace(a.Text)
		if t == "" {
			return Unanswered
		}
		return markup.Strip(t)

	case KindMatch:
		parts := make([]string, 0, len(q.Left))
		for li, l := range q.Left {
			r := Unanswered
			if li < len(a.Match) && a.Match[li] != nil {
				ri := *a.Match[li]
				if ri >= 0 && ri < len(q.Right) {
					r = markup.Strip(q.Right[ri])
				}
			}
			parts = append(parts, markup.Strip(l)+" → "+r)
		}
		return strings.Join(parts, pairDelim)
	}
	return Unanswered
}

// FormatCorrectAnswer renders the answer key as plain text.
func FormatCorrectAnswer(q *Question) string {
	switch q.Kind {
	case KindMCQ:
		if q.AnswerLetter != "" {
			i := LetterIndex(q.AnswerLetter)
			text := ""
			if i >= 0 && i < len(q.Choices) {
				text = q.Choices[i]
			}
			return q.AnswerLetter + ". " + markup.Strip(text)
		}
		if q.AnswerText != "" {
			return markup.Strip(q.AnswerText)
		}
		return ""

	case KindTrueFalse:
		if q.AnswerBool {
			return "True"
		}
		return "False"

	case KindFill:
		return strings.Join(q.Acceptable, " | ")

	case KindMatch:
		parts := make([]string, 0, len(q.Left))
		for li, l := range q.Left {
			r := Unanswered
			if li < len(q.AnswerMap) {
				ri := q.AnswerMap[li]
				if ri >= 0 && ri < len(q.Right) {
					r = markup.Strip(q.Right[ri])
				}
			}
			parts = append(parts, markup.Strip(l)+" → "+r)
		}
		return strings.Join(parts, pairDelim)
	}
	return ""
}
