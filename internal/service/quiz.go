package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"study-game/internal/config"
	"study-game/internal/content"
	"study-game/internal/domain"
	"study-game/internal/dto"
	"study-game/internal/logger"
	"study-game/internal/markup"
	"study-game/internal/normalize"
	"study-game/internal/repository"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// QuizParams selects and sizes one quiz session.
type QuizParams struct {
	Slug  string
	Seed  string
	N     int
	Min   int
	Max   int
	Debug bool
}

// QuizService serves normalized quiz sessions and grades answer sheets.
type QuizService interface {
	ListPacks(ctx context.Context) (*dto.PackListResponse, error)
	GetQuiz(ctx context.Context, p QuizParams) (*dto.QuizResponse, error)
	Grade(ctx context.Context, userID string, req *dto.GradeRequest) (*dto.GradeResponse, error)
	GetAttempt(ctx context.Context, attemptID string) (*domain.Attempt, error)
}

type quizService struct {
	packs    *content.PackService
	attempts repository.AttemptRepository
	quizCfg  config.QuizConfig
}

func NewQuizService(packs *content.PackService, attempts repository.AttemptRepository, quizCfg config.QuizConfig) QuizService {
	return &quizService{packs: packs, attempts: attempts, quizCfg: quizCfg}
}

func (s *quizService) ListPacks(ctx context.Context) (*dto.PackListResponse, error) {
	infos, err := s.packs.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.PackListResponse{Packs: make([]dto.PackListItem, 0, len(infos))}
	for _, info := range infos {
		resp.Packs = append(resp.Packs, dto.PackListItem{
			Slug:    info.Slug,
			Title:   info.Title,
			Subject: info.Subject,
			Grade:   info.Grade,
		})
	}
	return resp, nil
}

// GetQuiz loads, samples and normalizes one quiz session. A bad slug or a
// missing pack yields an empty list rather than an error, so the client
// renders a "no questions" state instead of breaking.
func (s *quizService) GetQuiz(ctx context.Context, p QuizParams) (*dto.QuizResponse, error) {
	questions, pack, err := s.deriveQuestions(ctx, p)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) &&
			(domainErr.Code == domain.ErrInvalidSlug || domainErr.Code == domain.ErrPackNotFound) {
			logger.Get().Warn("quiz request for unavailable pack",
				zap.String("slug", p.Slug), zap.String("code", string(domainErr.Code)))
			return &dto.QuizResponse{Title: "", List: []*domain.Question{}}, nil
		}
		return nil, err
	}

	resp := &dto.QuizResponse{
		Title: content.TitleFor(pack.Slug, pack.Title),
		List:  questions,
	}
	if p.Debug {
		resp.Debug = &dto.QuizDebug{
			Slug:    pack.Slug,
			Seed:    p.Seed,
			Rows:    len(pack.Rows),
			Sampled: len(questions),
		}
	}
	return resp, nil
}

// Grade re-derives the exact question list the client was served (same
// slug, seed and window) and scores the submitted sheet against it.
func (s *quizService) Grade(ctx context.Context, userID string, req *dto.GradeRequest) (*dto.GradeResponse, error) {
	if req == nil {
		return nil, domain.NewInvalidInputError("request body is required")
	}
	if strings.TrimSpace(req.Seed) == "" {
		return nil, domain.NewInvalidInputError("a seed is required to grade a session")
	}

	questions, pack, err := s.deriveQuestions(ctx, QuizParams{
		Slug: req.Slug,
		Seed: req.Seed,
		N:    req.N,
		Min:  req.Min,
		Max:  req.Max,
	})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, domain.NewPackNotFoundError(req.Slug)
	}

	attempt := domain.NewAttempt(ulid.Make().String(), userID, pack.Slug, len(questions))
	score := 0
	results := make([]dto.GradeResult, 0, len(questions))

	for i, q := range questions {
		answer := domain.EmptyAnswer(q)
		if i < len(req.Answers) {
			answer = req.Answers[i]
		}

		correct := domain.IsCorrect(q, answer)
		if !correct && q.Kind == domain.KindFill {
			correct = fillNumericMatch(q, answer)
		}
		if correct {
			score++
		}

		result := dto.GradeResult{
			QuestionID:    q.ID,
			Stem:          markup.Strip(q.Stem),
			Correct:       correct,
			YourAnswer:    domain.FormatYourAnswer(q, answer),
			CorrectAnswer: domain.FormatCorrectAnswer(q),
		}
		results = append(results, result)
		attempt.Results = append(attempt.Results, domain.AttemptResult{
			QuestionID:    result.QuestionID,
			Stem:          result.Stem,
			Correct:       result.Correct,
			YourAnswer:    result.YourAnswer,
			CorrectAnswer: result.CorrectAnswer,
		})
	}
	attempt.Score = score

	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	logger.Get().Info("graded quiz session",
		zap.String("attempt_id", attempt.ID),
		zap.String("slug", pack.Slug),
		zap.Int("score", score),
		zap.Int("total", attempt.Total))

	return &dto.GradeResponse{
		AttemptID: attempt.ID,
		Score:     score,
		Total:     attempt.Total,
		Results:   results,
	}, nil
}

func (s *quizService) GetAttempt(ctx context.Context, attemptID string) (*domain.Attempt, error) {
	return s.attempts.Get(ctx, attemptID)
}

func (s *quizService) deriveQuestions(ctx context.Context, p QuizParams) ([]*domain.Question, *content.Pack, error) {
	slug, err := content.ValidateSlug(p.Slug)
	if err != nil {
		return nil, nil, err
	}

	pack, err := s.packs.Load(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	spec := content.SampleSpec{N: p.N, Min: p.Min, Max: p.Max, Seed: p.Seed}
	if spec.N <= 0 && spec.Min <= 0 && spec.Max <= 0 {
		spec.Min = s.quizCfg.MinQuestions
		spec.Max = s.quizCfg.MaxQuestions
	}

	rows := content.SampleRows(pack.Rows, spec)
	return normalize.Normalize(rows), pack, nil
}

// fillNumericMatch accepts a fill answer when it and an acceptable answer
// are both numbers with equal value, so "3.50" still matches "3.5" when a
// sheet is scored server-side.
func fillNumericMatch(q *domain.Question, a domain.Answer) bool {
	user, ok := parseNumber(a.Text)
	if !ok {
		return false
	}
	for _, acc := range q.Acceptable {
		if want, ok := parseNumber(acc); ok && want == user {
			return true
		}
	}
	return false
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
