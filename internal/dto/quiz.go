package dto

import (
	"time"

	"study-game/internal/domain"
)

// QuizResponse is the payload for GET /api/quiz.
type QuizResponse struct {
	Title string             `json:"title"`
	List  []*domain.Question `json:"list"`
	Debug *QuizDebug         `json:"debug,omitempty"`
}

// QuizDebug carries sampling details, returned only when debug=1.
type QuizDebug struct {
	Slug    string `json:"slug"`
	Seed    string `json:"seed"`
	Rows    int    `json:"rows"`
	Sampled int    `json:"sampled"`
}

// PackListItem is one entry of GET /api/packs.
type PackListItem struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Subject string `json:"subject,omitempty"`
	Grade   string `json:"grade,omitempty"`
}

type PackListResponse struct {
	Packs []PackListItem `json:"packs"`
}

// GradeRequest is an answer sheet for POST /api/quiz/grade. The quiz is
// re-derived from slug, seed and the sampling window, so answers align
// by position with the list the client was served.
type GradeRequest struct {
	Slug    string          `json:"slug"`
	Seed    string          `json:"seed"`
	N       int             `json:"n,omitempty"`
	Min     int             `json:"nmin,omitempty"`
	Max     int             `json:"nmax,omitempty"`
	Answers []domain.Answer `json:"answers"`
}

type GradeResult struct {
	QuestionID    string `json:"question_id"`
	Stem          string `json:"stem"`
	Correct       bool   `json:"correct"`
	YourAnswer    string `json:"your_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

type GradeResponse struct {
	AttemptID string        `json:"attempt_id"`
	Score     int           `json:"score"`
	Total     int           `json:"total"`
	Results   []GradeResult `json:"results"`
}

// ReportRequest asks for a parent report email for a stored attempt.
type ReportRequest struct {
	AttemptID   string `json:"attempt_id"`
	ToEmail     string `json:"to_email"`
	StudentName string `json:"student_name,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
}

type ReportResponse struct {
	Sent bool   `json:"sent"`
	To   string `json:"to"`
}

type UploadResponse struct {
	Slug string `json:"slug"`
	Rows int    `json:"rows"`
}

type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// AttemptFromResults converts stored attempt rows into response rows.
func AttemptFromResults(results []domain.AttemptResult) []GradeResult {
	out := make([]GradeResult, len(results))
	for i, r := range results {
		out[i] = GradeResult{
			QuestionID:    r.QuestionID,
			Stem:          r.Stem,
			Correct:       r.Correct,
			YourAnswer:    r.YourAnswer,
			CorrectAnswer: r.CorrectAnswer,
		}
	}
	return out
}
