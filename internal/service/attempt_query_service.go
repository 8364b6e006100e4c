package service

import (
	"errors"
	"fmt"

	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/authz"
	"github.com/ltanphat/gradewell/internal/dto"
	"github.com/ltanphat/gradewell/internal/model"
	"github.com/ltanphat/gradewell/internal/repository"
	"github.com/rs/zerolog/log"
)

const defaultPendingReviewLimit = 20

// AttemptQueryService is the read side: result views and attempt listings.
// It never mutates an attempt.
type AttemptQueryService interface {
	// GetResult serves the projected attempt result. The requester must be
	// the attempt's learner or a reviewer authorized for the assessment.
	GetResult(attemptID, requesterID uint) (*dto.AttemptResultDTO, error)
	ListByLearner(learnerID uint) ([]dto.AttemptSummaryDTO, error)
	ListByAssessment(assessmentID, reviewerID uint) ([]dto.AttemptSummaryDTO, error)
	// ListPendingReview returns submitted attempts awaiting review, oldest
	// submission first.
	ListPendingReview(reviewerID uint, limit int) ([]dto.AttemptSummaryDTO, error)
}

type attemptQueryService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.AttemptRepository
	answerRepo     repository.AnswerRepository
	authorizer     authz.Authorizer
}

func NewAttemptQueryService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	authorizer authz.Authorizer,
) AttemptQueryService {
	return &attemptQueryService{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		answerRepo:     answerRepo,
		authorizer:     authorizer,
	}
}

func (s *attemptQueryService) GetResult(attemptID, requesterID uint) (*dto.AttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}

	var questions []model.Question
	assessment, err := s.assessmentRepo.FindByIDWithQuestions(attempt.AssessmentID)
	switch {
	case err == nil:
		questions = assessment.Questions
		attempt.Assessment = *assessment
	case errors.Is(err, apperror.ErrNotFound):
		// The authoring side removed the assessment after attempts were
		// taken; the result still renders from the stored attempt data.
		log.Warn().Uint("attemptID", attemptID).Uint("assessmentID", attempt.AssessmentID).
			Msg("GetResult: assessment no longer available")
		assessment = &model.Assessment{ID: attempt.AssessmentID}
	default:
		return nil, err
	}

	isOwner := attempt.LearnerID == requesterID
	if !isOwner && !s.authorizer.CanReview(requesterID, assessment) {
		log.Warn().Uint("attemptID", attemptID).Uint("requesterID", requesterID).
			Msg("GetResult: requester is neither owner nor reviewer")
		return nil, fmt.Errorf("attempt %d: %w", attemptID, apperror.ErrForbidden)
	}

	answers, err := s.answerRepo.FindByAttemptID(attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetResult: answer lookup failed")
		return nil, err
	}

	result := ProjectResult(attempt, answers, questions)
	return &result, nil
}

func (s *attemptQueryService) ListByLearner(learnerID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindByLearner(learnerID)
	if err != nil {
		log.Error().Err(err).Uint("learnerID", learnerID).Msg("ListByLearner: repository error")
		return nil, err
	}
	return toSummaries(attempts), nil
}

func (s *attemptQueryService) ListByAssessment(assessmentID, reviewerID uint) ([]dto.AttemptSummaryDTO, error) {
	assessment, err := s.assessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanReview(reviewerID, assessment) {
		return nil, fmt.Errorf("reviewer %d is not authorized for assessment %d: %w",
			reviewerID, assessmentID, apperror.ErrForbidden)
	}

	attempts, err := s.attemptRepo.FindByAssessment(assessmentID)
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("ListByAssessment: repository error")
		return nil, err
	}
	summaries := toSummaries(attempts)
	for i := range summaries {
		summaries[i].AssessmentTitle = assessment.Title
	}
	return summaries, nil
}

func (s *attemptQueryService) ListPendingReview(reviewerID uint, limit int) ([]dto.AttemptSummaryDTO, error) {
	if limit <= 0 {
		limit = defaultPendingReviewLimit
	}
	attempts, err := s.attemptRepo.FindByStatus(model.AttemptSubmitted, limit)
	if err != nil {
		log.Error().Err(err).Msg("ListPendingReview: repository error")
		return nil, err
	}

	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for i := range attempts {
		if !s.authorizer.CanReview(reviewerID, &attempts[i].Assessment) {
			continue
		}
		summaries = append(summaries, dto.NewAttemptSummaryDTO(&attempts[i]))
	}
	return summaries, nil
}

func toSummaries(attempts []model.Attempt) []dto.AttemptSummaryDTO {
	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for i := range attempts {
		summaries = append(summaries, dto.NewAttemptSummaryDTO(&attempts[i]))
	}
	return summaries
}
