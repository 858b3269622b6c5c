package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"study-game/internal/config"
	"study-game/internal/content"
	"study-game/internal/domain"
	"study-game/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAttempts struct {
	saved map[string]*domain.Attempt
}

func newMemAttempts() *memAttempts {
	return &memAttempts{saved: make(map[string]*domain.Attempt)}
}

func (m *memAttempts) Save(_ context.Context, a *domain.Attempt) error {
	if err := a.Validate(); err != nil {
		return err
	}
	m.saved[a.ID] = a
	return nil
}

func (m *memAttempts) Get(_ context.Context, id string) (*domain.Attempt, error) {
	a, ok := m.saved[id]
	if !ok {
		return nil, domain.NewAttemptNotFoundError(id)
	}
	return a, nil
}

func quizFixture(t *testing.T) (QuizService, *memAttempts) {
	t.Helper()
	base := t.TempDir()
	csv := "id,type,question,choiceA,choiceB,choiceC,choiceD,answer,title\n" +
		"1,mcq,1+1=?,1,2,3,4,B,小一數學\n" +
		"2,fill,Half of 7?,,,,,3.5,\n"
	path := filepath.Join(base, "math", "grade1", "demo.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	attempts := newMemAttempts()
	svc := NewQuizService(
		content.NewPackService(content.NewLocalStorage(base)),
		attempts,
		config.QuizConfig{MinQuestions: 1, MaxQuestions: 2},
	)
	return svc, attempts
}

func TestQuizService_GetQuiz(t *testing.T) {
	svc, _ := quizFixture(t)
	ctx := context.Background()

	resp, err := svc.GetQuiz(ctx, QuizParams{Slug: "math/grade1/demo", Seed: "s", N: 2, Debug: true})
	require.NoError(t, err)

	assert.Equal(t, "小一數學", resp.Title)
	assert.Len(t, resp.List, 2)
	require.NotNil(t, resp.Debug)
	assert.Equal(t, 2, resp.Debug.Rows)
	assert.Equal(t, 2, resp.Debug.Sampled)
}

func TestQuizService_GetQuiz_UnavailablePack(t *testing.T) {
	svc, _ := quizFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		slug string
	}{
		{"invalid slug", "../etc/passwd"},
		{"missing pack", "math/grade1/nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetQuiz(ctx, QuizParams{Slug: tt.slug, Seed: "s"})
			require.NoError(t, err)
			assert.Empty(t, resp.List)
			assert.Empty(t, resp.Title)
		})
	}
}

func TestQuizService_GetQuiz_SlugNormalized(t *testing.T) {
	svc, _ := quizFixture(t)

	resp, err := svc.GetQuiz(context.Background(), QuizParams{Slug: `Math\grade1:demo`, Seed: "s", N: 2})
	require.NoError(t, err)
	assert.Len(t, resp.List, 2)
}

func answersFor(list []*domain.Question, fillText string) []domain.Answer {
	answers := make([]domain.Answer, len(list))
	for i, q := range list {
		switch q.Kind {
		case domain.KindMCQ:
			idx := domain.LetterIndex(q.AnswerLetter)
			answers[i] = domain.Answer{Choice: &idx}
		case domain.KindFill:
			answers[i] = domain.Answer{Text: fillText}
		}
	}
	return answers
}

func TestQuizService_Grade(t *testing.T) {
	svc, attempts := quizFixture(t)
	ctx := context.Background()

	quiz, err := svc.GetQuiz(ctx, QuizParams{Slug: "math/grade1/demo", Seed: "2025-10-08", N: 2})
	require.NoError(t, err)
	require.Len(t, quiz.List, 2)

	resp, err := svc.Grade(ctx, "u1", &dto.GradeRequest{
		Slug:    "math/grade1/demo",
		Seed:    "2025-10-08",
		N:       2,
		Answers: answersFor(quiz.List, "3.5"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Score)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Results, 2)
	assert.NotEmpty(t, resp.AttemptID)

	saved, err := attempts.Get(ctx, resp.AttemptID)
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, 2, saved.Score)
}

func TestQuizService_Grade_NumericFillEquivalence(t *testing.T) {
	svc, _ := quizFixture(t)
	ctx := context.Background()

	quiz, err := svc.GetQuiz(ctx, QuizParams{Slug: "math/grade1/demo", Seed: "x", N: 2})
	require.NoError(t, err)

	resp, err := svc.Grade(ctx, "", &dto.GradeRequest{
		Slug:    "math/grade1/demo",
		Seed:    "x",
		N:       2,
		Answers: answersFor(quiz.List, "3.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Score, "3.50 counts as 3.5 when scored server-side")
}

func TestQuizService_Grade_MissingAnswersCountWrong(t *testing.T) {
	svc, _ := quizFixture(t)
	ctx := context.Background()

	resp, err := svc.Grade(ctx, "", &dto.GradeRequest{
		Slug: "math/grade1/demo",
		Seed: "x",
		N:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, 2, resp.Total)
	for _, r := range resp.Results {
		assert.False(t, r.Correct)
		assert.Equal(t, domain.Unanswered, r.YourAnswer)
	}
}

func TestQuizService_Grade_Validation(t *testing.T) {
	svc, _ := quizFixture(t)
	ctx := context.Background()

	_, err := svc.Grade(ctx, "", &dto.GradeRequest{Slug: "math/grade1/demo"})
	require.Error(t, err, "seed required")

	_, err = svc.Grade(ctx, "", &dto.GradeRequest{Slug: "math/grade1/nope", Seed: "s"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrPackNotFound, domainErr.Code)
}

func TestQuizService_ListPacks(t *testing.T) {
	svc, _ := quizFixture(t)

	resp, err := svc.ListPacks(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Packs, 1)
	assert.Equal(t, "math/grade1/demo", resp.Packs[0].Slug)
	assert.Equal(t, "math", resp.Packs[0].Subject)
}
