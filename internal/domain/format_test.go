package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatYourAnswer_MCQ(t *testing.T) {
	q := &Question{
		Kind:         KindMCQ,
		Choices:      []string{"one", "[b]two[/b]", "three", "four"},
		AnswerLetter: "B",
	}

	assert.Equal(t, "B. two", FormatYourAnswer(q, Answer{Choice: intPtr(1)}), "markup is stripped")
	assert.Equal(t, Unanswered, FormatYourAnswer(q, Answer{}))
}

func TestFormatYourAnswer_TrueFalse(t *testing.T) {
	q := &Question{Kind: KindTrueFalse, AnswerBool: false}

	assert.Equal(t, "True", FormatYourAnswer(q, Answer{Bool: boolPtr(true)}))
	assert.Equal(t, "False", FormatYourAnswer(q, Answer{Bool: boolPtr(false)}))
	assert.Equal(t, Unanswered, FormatYourAnswer(q, Answer{}))
}

func TestFormatYourAnswer_Fill(t *testing.T) {
	q := &Question{Kind: KindFill, Acceptable: []string{"cat"}}

	assert.Equal(t, "cat", FormatYourAnswer(q, Answer{Text: " cat "}))
	assert.Equal(t, Unanswered, FormatYourAnswer(q, Answer{Text: "  "}))
}

func TestFormatYourAnswer_Match(t *testing.T) {
	q := &Question{
		Kind:      KindMatch,
		Left:      []string{"[c=red]Red[/c]", "Blue"},
		Right:     []string{"red", "blue"},
		AnswerMap: []int{0, 1},
	}

	got := FormatYourAnswer(q, Answer{Match: []*int{intPtr(1), nil}})
	assert.Equal(t, "Red → blue | Blue → —", got)
}

func TestFormatCorrectAnswer(t *testing.T) {
	tests := []struct {
		name string
		q    *Question
		want string
	}{
		{
			name: "mcq by letter",
			q:    &Question{Kind: KindMCQ, Choices: []string{"a", "b"}, AnswerLetter: "A"},
			want: "A. a",
		},
		{
			name: "mcq by text",
			q:    &Question{Kind: KindMCQ, Choices: []string{"a"}, AnswerText: "[i]a[/i]"},
			want: "a",
		},
		{
			name: "mcq without key",
			q:    &Question{Kind: KindMCQ},
			want: "",
		},
		{
			name: "tf",
			q:    &Question{Kind: KindTrueFalse, AnswerBool: true},
			want: "True",
		},
		{
			name: "fill joins acceptable answers",
			q:    &Question{Kind: KindFill, Acceptable: []string{"3.5", "3.50"}},
			want: "3.5 | 3.50",
		},
		{
			name: "match uses answer map",
			q: &Question{
				Kind:      KindMatch,
				Left:      []string{"a", "b"},
				Right:     []string{"b", "a"},
				AnswerMap: []int{1, 0},
			},
			want: "a → a | b → b",
		},
		{
			name: "match with unmatched derived entry",
			q: &Question{
				Kind:      KindMatch,
				Left:      []string{"Red"},
				Right:     []string{"紅色"},
				AnswerMap: []int{-1},
			},
			want: "Red → —",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCorrectAnswer(tt.q))
		})
	}
}
