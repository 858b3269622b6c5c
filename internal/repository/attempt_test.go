package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"study-game/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAttempt() *domain.Attempt {
	return &domain.Attempt{
		ID:        "01JATTEMPT",
		UserID:    "u1",
		Slug:      "math/grade1/demo",
		Score:     1,
		Total:     2,
		CreatedAt: time.Date(2025, 10, 8, 9, 0, 0, 0, time.UTC),
		Results: []domain.AttemptResult{
			{QuestionID: "1", Stem: "1+1=?", Correct: true, YourAnswer: "B. 2", CorrectAnswer: "B. 2"},
			{QuestionID: "2", Stem: "2+2=?", Correct: false, YourAnswer: "—", CorrectAnswer: "C. 4"},
		},
	}
}

func TestAttemptRepository_Save(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewAttemptRepository(db, time.Hour)
	attempt := testAttempt()

	payload, err := json.Marshal(attempt)
	require.NoError(t, err)

	mock.ExpectSet("studygame:quiz:attempt:01JATTEMPT", payload, time.Hour).SetVal("OK")

	require.NoError(t, repo.Save(context.Background(), attempt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_Save_Invalid(t *testing.T) {
	db, _ := redismock.NewClientMock()
	repo := NewAttemptRepository(db, time.Hour)

	err := repo.Save(context.Background(), &domain.Attempt{Slug: "x"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrInvalidInput, domainErr.Code)
}

func TestAttemptRepository_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewAttemptRepository(db, time.Hour)
	attempt := testAttempt()

	payload, err := json.Marshal(attempt)
	require.NoError(t, err)

	mock.ExpectGet("studygame:quiz:attempt:01JATTEMPT").SetVal(string(payload))

	got, err := repo.Get(context.Background(), "01JATTEMPT")
	require.NoError(t, err)
	assert.Equal(t, attempt.Slug, got.Slug)
	assert.Len(t, got.Results, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttemptRepository_Get_NotFound(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := NewAttemptRepository(db, time.Hour)

	mock.ExpectGet("studygame:quiz:attempt:nope").RedisNil()

	_, err := repo.Get(context.Background(), "nope")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrAttemptNotFound, domainErr.Code)
}
