package model

import (
	"time"

	"gorm.io/gorm"
)

// Question is a single free-text prompt within an assessment. Points is the
// maximum a reviewer may award for it.
type Question struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	AssessmentID uint           `json:"assessment_id" gorm:"not null;index"`
	Prompt       string         `json:"prompt" gorm:"type:text;not null"`
	Points       int            `json:"points" gorm:"not null;default:1"`
	OrderIndex   int            `json:"order_index" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
