package domain

import "time"

// Attempt is one graded quiz session, stored after the grade pass so
// reports can reference it later. Results are immutable once written.
type Attempt struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id,omitempty"`
	Slug      string          `json:"slug"`
	Score     int             `json:"score"`
	Total     int             `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Results   []AttemptResult `json:"results"`
}

// AttemptResult is the per-question outcome, already formatted as plain
// text so consumers never need the question model back.
type AttemptResult struct {
	QuestionID    string `json:"question_id"`
	Stem          string `json:"stem"`
	Correct       bool   `json:"correct"`
	YourAnswer    string `json:"your_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

// NewAttempt creates an Attempt shell; results are appended by the
// grading pass.
func NewAttempt(id, userID, slug string, total int) *Attempt {
	return &Attempt{
		ID:        id,
		UserID:    userID,
		Slug:      slug,
		Total:     total,
		CreatedAt: time.Now(),
	}
}

// Validate validates the attempt
func (a *Attempt) Validate() error {
	if a.ID == "" {
		return NewInvalidInputError("attempt ID is required")
	}
	if a.Slug == "" {
		return NewInvalidInputError("slug is required")
	}
	return nil
}
