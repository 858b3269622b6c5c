package normalize

import (
	"testing"

	"study-game/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMCQ(t *testing.T) {
	t.Run("discrete choice columns with letter answer", func(t *testing.T) {
		q := One(Record{
			"type": "mcq", "question": "1+1=?",
			"choiceA": "1", "choiceB": "2", "choiceC": "3", "choiceD": "4",
			"answer": "b",
		}, 0)

		require.Equal(t, domain.KindMCQ, q.Kind)
		assert.Equal(t, []string{"1", "2", "3", "4"}, q.Choices)
		assert.Equal(t, "B", q.AnswerLetter)
		assert.Empty(t, q.AnswerText)

		assert.True(t, domain.IsCorrect(q, domain.Answer{Choice: intPtr(1)}))
		assert.False(t, domain.IsCorrect(q, domain.Answer{Choice: intPtr(0)}))
	})

	t.Run("choices array preferred over discrete columns", func(t *testing.T) {
		q := One(Record{
			"type":    "mcq",
			"choices": []any{"x", "y"},
			"choiceA": "ignored",
			"answer":  "y",
		}, 0)

		assert.Equal(t, []string{"x", "y"}, q.Choices)
		assert.Equal(t, "y", q.AnswerText)
	})

	t.Run("gaps in discrete columns keep letter positions", func(t *testing.T) {
		q := One(Record{"type": "mcq", "choiceA": "a", "choiceC": "c", "answer": "C"}, 0)

		assert.Equal(t, []string{"a", "", "c", ""}, q.Choices)
		assert.True(t, domain.IsCorrect(q, domain.Answer{Choice: intPtr(2)}))
	})

	t.Run("non-letter answer becomes answer text", func(t *testing.T) {
		q := One(Record{"type": "mcq", "choiceA": "apple", "choiceB": "pear", "answer": " pear "}, 0)

		assert.Empty(t, q.AnswerLetter)
		assert.Equal(t, "pear", q.AnswerText)
		assert.True(t, domain.IsCorrect(q, domain.Answer{Choice: intPtr(1)}))
	})
}

func TestExtractTrueFalse(t *testing.T) {
	tests := []struct {
		name string
		row  Record
		want bool
	}{
		{"answer T", Record{"answer": "T"}, true},
		{"answer true mixed case", Record{"type": "tf", "answer": "True"}, true},
		{"answer yes", Record{"type": "tf", "answer": "yes"}, true},
		{"answer 1", Record{"type": "tf", "answer": "1"}, true},
		{"answer F", Record{"answer": "f"}, false},
		{"answer false", Record{"answer": "FALSE"}, false},
		{"tagged with empty answer", Record{"type": "tf"}, false},
		{"explicit answerBool wins", Record{"answerBool": true, "answer": "f"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := One(tt.row, 0)
			require.Equal(t, domain.KindTrueFalse, q.Kind)
			assert.Equal(t, tt.want, q.AnswerBool)
		})
	}
}

func TestExtractFill(t *testing.T) {
	t.Run("pipe-delimited answers", func(t *testing.T) {
		q := One(Record{"type": "fill", "answers": "3.5 | 3.50 |"}, 0)

		require.Equal(t, domain.KindFill, q.Kind)
		assert.Equal(t, []string{"3.5", "3.50"}, q.Acceptable, "empty tokens dropped")
	})

	t.Run("json array answers", func(t *testing.T) {
		q := One(Record{"type": "fill", "answers": `["Cat", "KITTEN"]`}, 0)

		assert.Equal(t, []string{"cat", "kitten"}, q.Acceptable, "stored normalized")
	})

	t.Run("native array answers", func(t *testing.T) {
		q := One(Record{"type": "fill", "answers": []any{"a b", "C"}}, 0)

		assert.Equal(t, []string{"ab", "c"}, q.Acceptable)
	})

	t.Run("singular answer fallback", func(t *testing.T) {
		q := One(Record{"question": "name it", "answer": "Lion"}, 0)

		require.Equal(t, domain.KindFill, q.Kind)
		assert.Equal(t, []string{"lion"}, q.Acceptable)
	})

	t.Run("no answers at all is valid but ungradable", func(t *testing.T) {
		q := One(Record{"type": "fill", "question": "?"}, 0)

		assert.Empty(t, q.Acceptable)
		assert.False(t, domain.IsCorrect(q, domain.Answer{Text: "x"}))
	})

	t.Run("user answer must match textually after normalization", func(t *testing.T) {
		q := One(Record{"type": "fill", "answers": "3.5"}, 0)

		assert.True(t, domain.IsCorrect(q, domain.Answer{Text: " 3.5 "}))
		assert.False(t, domain.IsCorrect(q, domain.Answer{Text: "3.50"}))
	})
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseList("a|b"))
	assert.Equal(t, []string{"a", "b"}, ParseList(`["a","b"]`))
	assert.Nil(t, ParseList(""))
	assert.Nil(t, ParseList("[broken"))
	assert.Equal(t, []string{"single"}, ParseList("  single "))
}

func TestParseIntList(t *testing.T) {
	assert.Equal(t, []int{0, 2, 1}, parseIntList("0|2|1"))
	assert.Equal(t, []int{0, 2, 1}, parseIntList("0, 2, 1"))
	assert.Equal(t, []int{3}, parseIntList("[3]"))
	assert.Nil(t, parseIntList(""))
	assert.Nil(t, parseIntList("a|b"))
}
