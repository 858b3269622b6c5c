package domain

// IsCorrect is the grading predicate: a pure function of a question and a
// user answer. An unanswered or partially answered question is never
// correct; a question with no usable answer key always grades false
// rather than failing.
func IsCorrect(q *Question, a Answer) bool {
	switch q.Kind {
	case KindMCQ:
		return isCorrectMCQ(q, a)
	case KindTrueFalse:
		return isCorrectTF(q, a)
	case KindFill:
		return isCorrectFill(q, a)
	case KindMatch:
		return isCorrectMatch(q, a)
	}
	return false
}

func isCorrectMCQ(q *Question, a Answer) bool {
	if a.Choice == nil {
		return false
	}
	if q.AnswerLetter != "" {
		return LetterIndex(q.AnswerLetter) == *a.Choice
	}
	if q.AnswerText != "" {
		if *a.Choice < 0 || *a.Choice >= len(q.Choices) {
			return false
		}
		return NormText(q.Choices[*a.Choice]) == NormText(q.AnswerText)
	}
	return false
}

func isCorrectTF(q *Question, a Answer) bool {
	if a.Bool == nil {
		return false
	}
	return *a.Bool == q.AnswerBool
}

// isCorrectFill compares by exact normalized text equality only. Numeric
// equivalence ("3.50" vs "3.5") is the grade endpoint's concern, not the
// predicate's.
func isCorrectFill(q *Question, a Answer) bool {
	t := NormText(a.Text)
	if t == "" {
		return false
	}
	for _, acc := range q.Acceptable {
		if NormText(acc) == t {
			return true
		}
	}
	return false
}

// isCorrectMatch requires every slot answered and matching AnswerMap.
// No partial credit: one wrong or empty slot fails the question.
func isCorrectMatch(q *Question, a Answer) bool {
	if len(a.Match) != len(q.Left) || len(q.AnswerMap) != len(q.Left) {
		return false
	}
	for i := range q.Left {
		ri := a.Match[i]
		if ri == nil {
			return false
		}
		if *ri != q.AnswerMap[i] {
			return false
		}
	}
	return len(q.Left) > 0
}
