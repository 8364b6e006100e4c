package model

import (
	"time"

	"gorm.io/gorm"
)

// Assessment is a time-bounded set of gradable questions. Rows are written by
// the authoring subsystem; the attempt engine only reads them. A nil
// TimeLimitMinutes means unlimited time, a nil DueAt means no due date.
type Assessment struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description,omitempty"`
	DueAt            *time.Time     `json:"due_at,omitempty"`
	TimeLimitMinutes *int           `json:"time_limit_minutes,omitempty"`
	Questions        []Question     `json:"questions,omitempty" gorm:"foreignKey:AssessmentID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// DeadlineFrom returns the hard deadline for an attempt started at the given
// time, or nil when the assessment has no time limit.
func (a *Assessment) DeadlineFrom(startedAt time.Time) *time.Time {
	if a.TimeLimitMinutes == nil {
		return nil
	}
	d := startedAt.Add(time.Duration(*a.TimeLimitMinutes) * time.Minute)
	return &d
}

// PastDue reports whether the assessment's due date has elapsed at the given
// time. Always false when no due date is set.
func (a *Assessment) PastDue(now time.Time) bool {
	return a.DueAt != nil && now.After(*a.DueAt)
}

// QuestionByID resolves one of the assessment's questions, tolerating ids
// that no longer belong to the question set.
func (a *Assessment) QuestionByID(id uint) (Question, bool) {
	for _, q := range a.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
