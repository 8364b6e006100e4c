package dto

import (
	"time"

	"github.com/ltanphat/gradewell/internal/model"
)

// AttemptStartedDTO is returned by the start operation. Deadline is absent
// for untimed assessments. Resumed distinguishes returning an existing
// in-progress attempt from creating a fresh one.
type AttemptStartedDTO struct {
	AttemptID    uint       `json:"attempt_id"`
	AssessmentID uint       `json:"assessment_id"`
	LearnerID    uint       `json:"learner_id"`
	StartedAt    time.Time  `json:"started_at"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
	Resumed      bool       `json:"resumed"`
}

// AttemptSubmittedDTO is returned by the submit operation. EndedAt is the
// recorded (deadline-clamped) end time, not necessarily wall-clock
// submission time.
type AttemptSubmittedDTO struct {
	AttemptID uint       `json:"attempt_id"`
	EndedAt   *time.Time `json:"ended_at"`
	MaxScore  *int       `json:"max_score"`
	Status    string     `json:"status"`
}

// AttemptGradedDTO is returned by the grade operation.
type AttemptGradedDTO struct {
	AttemptID uint   `json:"attempt_id"`
	Score     *int   `json:"score"`
	MaxScore  *int   `json:"max_score"`
	Status    string `json:"status"`
}

// AttemptSummaryDTO lists an attempt without its answers.
type AttemptSummaryDTO struct {
	ID              uint       `json:"id"`
	AssessmentID    uint       `json:"assessment_id"`
	AssessmentTitle string     `json:"assessment_title,omitempty"`
	LearnerID       uint       `json:"learner_id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Score           *int       `json:"score,omitempty"`
	MaxScore        *int       `json:"max_score,omitempty"`
	Status          string     `json:"status"`
}

// AnswerResultDTO pairs one answer with its question for display. Correct is
// a display affordance only: true iff the awarded points equal the question's
// full point value.
type AnswerResultDTO struct {
	QuestionID     uint   `json:"question_id"`
	Prompt         string `json:"prompt"`
	QuestionPoints int    `json:"question_points"`
	Text           string `json:"text"`
	AwardedPoints  *int   `json:"awarded_points,omitempty"`
	Correct        bool   `json:"correct"`
}

// AttemptResultDTO is the display-ready projection of an attempt, shared by
// the learner result view and the reviewer grading view.
type AttemptResultDTO struct {
	ID              uint              `json:"id"`
	AssessmentID    uint              `json:"assessment_id"`
	AssessmentTitle string            `json:"assessment_title,omitempty"`
	LearnerID       uint              `json:"learner_id"`
	StartedAt       time.Time         `json:"started_at"`
	EndedAt         *time.Time        `json:"ended_at,omitempty"`
	Score           *int              `json:"score,omitempty"`
	MaxScore        *int              `json:"max_score,omitempty"`
	Status          string            `json:"status"`
	PendingReview   bool              `json:"pending_review"`
	Answers         []AnswerResultDTO `json:"answers"`
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// NewAttemptSummaryDTO maps an attempt model to its summary view.
func NewAttemptSummaryDTO(attempt *model.Attempt) AttemptSummaryDTO {
	summary := AttemptSummaryDTO{
		ID:           attempt.ID,
		AssessmentID: attempt.AssessmentID,
		LearnerID:    attempt.LearnerID,
		StartedAt:    attempt.StartedAt,
		EndedAt:      attempt.EndedAt,
		Score:        attempt.Score,
		MaxScore:     attempt.MaxScore,
		Status:       string(attempt.Status),
	}
	if attempt.Assessment.ID != 0 {
		summary.AssessmentTitle = attempt.Assessment.Title
	}
	return summary
}
