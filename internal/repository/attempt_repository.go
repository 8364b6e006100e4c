package repository

import (
	"errors"
	"fmt"

	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/model"
	"gorm.io/gorm"
)

// AttemptRepository is the attempt store. Each mutating method is one atomic
// unit: CreateActive relies on the unique active-attempt index, while
// SubmitAnswers and ApplyGrades run their batch write and status flip inside
// a single transaction so no partially-submitted or partially-graded attempt
// is ever observable.
type AttemptRepository interface {
	// CreateActive persists a fresh IN_PROGRESS attempt. The losing side of
	// a concurrent start for the same learner and assessment receives
	// apperror.ErrAlreadyInProgress.
	CreateActive(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByIDWithAnswers(id uint) (*model.Attempt, error)
	// FindByLearnerAndAssessment returns apperror.ErrNotFound when the
	// learner has no attempt against the assessment.
	FindByLearnerAndAssessment(learnerID, assessmentID uint) (*model.Attempt, error)
	// SubmitAnswers writes the answer batch and the attempt's submitted
	// fields (end time, max score, status) atomically. The write is guarded
	// on the attempt still being IN_PROGRESS in the store; the loser of a
	// concurrent submit receives apperror.ErrAlreadyCompleted with no write.
	SubmitAnswers(attempt *model.Attempt, answers []model.Answer) error
	// ApplyGrades writes the awarded points and the attempt's graded fields
	// (score, status) atomically, guarded on the attempt still being
	// SUBMITTED; otherwise apperror.ErrNotGradable with no write.
	ApplyGrades(attempt *model.Attempt, answers []model.Answer) error
	FindByLearner(learnerID uint) ([]model.Attempt, error)
	FindByAssessment(assessmentID uint) ([]model.Attempt, error)
	// FindByStatus returns attempts in the given status, oldest end time
	// first, capped at limit.
	FindByStatus(status model.AttemptStatus, limit int) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) CreateActive(attempt *model.Attempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("learner %d already holds an attempt for assessment %d: %w",
				attempt.LearnerID, attempt.AssessmentID, apperror.ErrAlreadyInProgress)
		}
		return err
	}
	return nil
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, translateLookupError(err, "attempt", id)
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDWithAnswers(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Assessment").
		Preload("Answers.Question").
		First(&attempt, id).Error
	if err != nil {
		return nil, translateLookupError(err, "attempt", id)
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByLearnerAndAssessment(learnerID, assessmentID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Where("learner_id = ? AND assessment_id = ?", learnerID, assessmentID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no attempt for learner %d on assessment %d: %w",
				learnerID, assessmentID, apperror.ErrNotFound)
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) SubmitAnswers(attempt *model.Attempt, answers []model.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Conditional update: the status flip only lands while the attempt is
		// still IN_PROGRESS, so a concurrent submit cannot replace an
		// already-recorded answer batch.
		res := tx.Model(&model.Attempt{}).
			Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
			Updates(map[string]interface{}{
				"ended_at":  attempt.EndedAt,
				"max_score": attempt.MaxScore,
				"score":     attempt.Score,
				"status":    attempt.Status,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("attempt %d already left %s: %w",
				attempt.ID, model.AttemptInProgress, apperror.ErrAlreadyCompleted)
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return fmt.Errorf("failed to persist answer batch: %w", err)
			}
		}
		return nil
	})
}

func (r *attemptRepository) ApplyGrades(attempt *model.Attempt, answers []model.Answer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Attempt{}).
			Where("id = ? AND status = ?", attempt.ID, model.AttemptSubmitted).
			Updates(map[string]interface{}{
				"score":  attempt.Score,
				"status": attempt.Status,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("attempt %d is not awaiting grading: %w",
				attempt.ID, apperror.ErrNotGradable)
		}
		for i := range answers {
			err := tx.Model(&model.Answer{}).
				Where("id = ?", answers[i].ID).
				Update("awarded_points", answers[i].AwardedPoints).Error
			if err != nil {
				return fmt.Errorf("failed to persist award for answer %d: %w", answers[i].ID, err)
			}
		}
		return nil
	})
}

func (r *attemptRepository) FindByLearner(learnerID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Assessment").
		Where("learner_id = ?", learnerID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindByAssessment(assessmentID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Where("assessment_id = ?", assessmentID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindByStatus(status model.AttemptStatus, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Assessment").
		Where("status = ?", status).
		Order("ended_at ASC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
