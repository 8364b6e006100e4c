package repository

import (
	"github.com/ltanphat/gradewell/internal/model"
	"gorm.io/gorm"
)

// AnswerRepository reads the answer set owned by an attempt. Answers are
// written only through AttemptRepository's atomic submit/grade operations.
type AnswerRepository interface {
	FindByAttemptID(attemptID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByAttemptID(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Preload("Question").
		Where("attempt_id = ?", attemptID).
		Find(&answers).Error
	return answers, err
}
