package model

import (
	"time"

	"gorm.io/gorm"
)

// AttemptStatus is the single source of truth for an attempt's position in
// the lifecycle. Timestamps are auxiliary data, never used to infer state.
type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptSubmitted  AttemptStatus = "SUBMITTED"
	AttemptGraded     AttemptStatus = "GRADED"
)

// Attempt is one learner's single run through an assessment.
//
// The partial unique index on (assessment_id, learner_id) enforces the
// one-attempt-per-learner invariant at the store: a learner can never hold
// two live attempt rows for the same assessment, and the losing side of a
// concurrent start observes a duplicate-key conflict.
type Attempt struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	AssessmentID uint           `json:"assessment_id" gorm:"not null;uniqueIndex:uix_attempts_learner_assessment,where:deleted_at IS NULL"`
	Assessment   Assessment     `json:"assessment,omitempty" gorm:"foreignKey:AssessmentID"`
	LearnerID    uint           `json:"learner_id" gorm:"not null;index;uniqueIndex:uix_attempts_learner_assessment,where:deleted_at IS NULL"`
	StartedAt    time.Time      `json:"started_at" gorm:"not null"`
	EndedAt      *time.Time     `json:"ended_at,omitempty"`
	Score        *int           `json:"score,omitempty"`
	MaxScore     *int           `json:"max_score,omitempty"`
	Status       AttemptStatus  `json:"status" gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`
	Answers      []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Deadline returns the attempt's hard deadline given the assessment's time
// limit, or nil when the assessment is untimed.
func (a *Attempt) Deadline(assessment *Assessment) *time.Time {
	return assessment.DeadlineFrom(a.StartedAt)
}

// Expired reports whether the attempt's time limit elapsed before now.
func (a *Attempt) Expired(assessment *Assessment, now time.Time) bool {
	deadline := a.Deadline(assessment)
	return deadline != nil && now.After(*deadline)
}
