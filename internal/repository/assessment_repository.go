package repository

import (
	"errors"
	"fmt"

	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/model"
	"gorm.io/gorm"
)

// AssessmentRepository is the attempt engine's read-only view of the question
// bank. The rows are owned and written by the authoring subsystem; this
// contract is the collaborator boundary.
type AssessmentRepository interface {
	FindByID(id uint) (*model.Assessment, error)
	FindByIDWithQuestions(id uint) (*model.Assessment, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.First(&assessment, id).Error; err != nil {
		return nil, translateLookupError(err, "assessment", id)
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).First(&assessment, id).Error
	if err != nil {
		return nil, translateLookupError(err, "assessment", id)
	}
	return &assessment, nil
}

func translateLookupError(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", resource, id, apperror.ErrNotFound)
	}
	return err
}
