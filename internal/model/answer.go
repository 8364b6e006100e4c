package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer is one free-text response within an attempt. The batch is created
// when the attempt is submitted; afterwards only AwardedPoints may change,
// and only through grading. AwardedPoints stays nil until a reviewer scores
// the answer.
type Answer struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	AttemptID     uint           `json:"attempt_id" gorm:"not null;index;uniqueIndex:uix_answers_attempt_question,where:deleted_at IS NULL"`
	QuestionID    uint           `json:"question_id" gorm:"not null;index;uniqueIndex:uix_answers_attempt_question,where:deleted_at IS NULL"`
	Question      Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	AwardedPoints *int           `json:"awarded_points,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
