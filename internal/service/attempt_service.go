package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/authz"
	"github.com/ltanphat/gradewell/internal/dto"
	"github.com/ltanphat/gradewell/internal/model"
	"github.com/ltanphat/gradewell/internal/repository"
	"github.com/rs/zerolog/log"
)

// AttemptService owns the attempt state machine: IN_PROGRESS -> SUBMITTED ->
// GRADED, with no other transitions. Start is idempotent while an attempt is
// in progress; Submit is idempotent once the attempt has left IN_PROGRESS.
type AttemptService interface {
	Start(assessmentID, learnerID uint) (*dto.AttemptStartedDTO, error)
	Submit(attemptID, learnerID uint, answers []dto.AnswerSubmissionDTO) (*dto.AttemptSubmittedDTO, error)
}

type attemptService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.AttemptRepository
	authorizer     authz.Authorizer
	now            func() time.Time
}

func NewAttemptService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.AttemptRepository,
	authorizer authz.Authorizer,
) AttemptService {
	return &attemptService{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		authorizer:     authorizer,
		now:            time.Now,
	}
}

// Start creates a fresh IN_PROGRESS attempt, or returns the learner's
// existing one while it is still within its time limit. A timed-out
// in-progress attempt is refused rather than silently extended; it must go
// through the submit path. Any completed attempt blocks a restart.
func (s *attemptService) Start(assessmentID, learnerID uint) (*dto.AttemptStartedDTO, error) {
	assessment, err := s.assessmentRepo.FindByIDWithQuestions(assessmentID)
	if err != nil {
		log.Warn().Err(err).Uint("assessmentID", assessmentID).Msg("Start: assessment lookup failed")
		return nil, err
	}
	if !s.authorizer.CanAttempt(learnerID, assessment) {
		return nil, fmt.Errorf("learner %d is not entitled to assessment %d: %w",
			learnerID, assessmentID, apperror.ErrForbidden)
	}

	now := s.now()

	existing, err := s.attemptRepo.FindByLearnerAndAssessment(learnerID, assessmentID)
	if err == nil {
		if existing.Status == model.AttemptInProgress {
			if existing.Expired(assessment, now) {
				log.Warn().Uint("attemptID", existing.ID).Uint("learnerID", learnerID).
					Msg("Start: refusing to resume expired attempt")
				return nil, fmt.Errorf("attempt %d: %w", existing.ID, apperror.ErrAttemptExpired)
			}
			log.Info().Uint("attemptID", existing.ID).Uint("learnerID", learnerID).
				Msg("Start: resuming in-progress attempt")
			return newAttemptStartedDTO(existing, assessment, true), nil
		}
		return nil, fmt.Errorf("learner %d on assessment %d: %w",
			learnerID, assessmentID, apperror.ErrAlreadyCompleted)
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	if assessment.PastDue(now) {
		return nil, fmt.Errorf("assessment %d was due %s: %w",
			assessmentID, assessment.DueAt.Format(time.RFC3339), apperror.ErrPastDue)
	}

	attempt := &model.Attempt{
		AssessmentID: assessmentID,
		LearnerID:    learnerID,
		StartedAt:    now,
		Status:       model.AttemptInProgress,
	}
	if err := s.attemptRepo.CreateActive(attempt); err != nil {
		return nil, err
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("assessmentID", assessmentID).
		Uint("learnerID", learnerID).Msg("Start: created attempt")
	return newAttemptStartedDTO(attempt, assessment, false), nil
}

// Submit records the answer batch and moves the attempt to SUBMITTED. A late
// submission is still accepted, but the recorded end time is clamped at the
// attempt's deadline so duration-based reporting never exceeds the configured
// limit. Submitting a non-IN_PROGRESS attempt returns it unchanged so client
// retries never double-process.
func (s *attemptService) Submit(attemptID, learnerID uint, answers []dto.AnswerSubmissionDTO) (*dto.AttemptSubmittedDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.LearnerID != learnerID {
		log.Warn().Uint("attemptID", attemptID).Uint("learnerID", learnerID).
			Uint("ownerID", attempt.LearnerID).Msg("Submit: attempt owned by another learner")
		return nil, fmt.Errorf("attempt %d belongs to another learner: %w", attemptID, apperror.ErrForbidden)
	}

	if attempt.Status != model.AttemptInProgress {
		log.Info().Uint("attemptID", attemptID).Str("status", string(attempt.Status)).
			Msg("Submit: attempt already submitted, returning unchanged")
		return newAttemptSubmittedDTO(attempt), nil
	}

	assessment, err := s.assessmentRepo.FindByIDWithQuestions(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	effectiveEnd := now
	if deadline := attempt.Deadline(assessment); deadline != nil && now.After(*deadline) {
		effectiveEnd = *deadline
		log.Warn().Uint("attemptID", attemptID).Time("deadline", *deadline).Time("submittedAt", now).
			Msg("Submit: late submission, clamping recorded end time at the deadline")
	}

	questionByID := make(map[uint]model.Question, len(assessment.Questions))
	for _, q := range assessment.Questions {
		questionByID[q.ID] = q
	}

	batch := make([]model.Answer, 0, len(answers))
	seen := make(map[uint]bool, len(answers))
	maxScore := 0
	for _, sub := range answers {
		question, ok := questionByID[sub.QuestionID]
		if !ok {
			return nil, fmt.Errorf("question %d does not belong to assessment %d: %w",
				sub.QuestionID, assessment.ID, apperror.ErrNotFound)
		}
		if seen[question.ID] {
			log.Warn().Uint("attemptID", attemptID).Uint("questionID", question.ID).
				Msg("Submit: duplicate answer for question, keeping the first")
			continue
		}
		seen[question.ID] = true
		batch = append(batch, model.Answer{
			AttemptID:  attempt.ID,
			QuestionID: question.ID,
			Text:       sub.Text,
		})
		maxScore += question.Points
	}

	attempt.EndedAt = &effectiveEnd
	attempt.MaxScore = &maxScore
	attempt.Score = nil
	attempt.Status = model.AttemptSubmitted

	if err := s.attemptRepo.SubmitAnswers(attempt, batch); err != nil {
		if errors.Is(err, apperror.ErrAlreadyCompleted) {
			// Lost a race against a concurrent submit; the winner's batch is
			// already on record, so return the attempt as stored.
			log.Info().Uint("attemptID", attemptID).
				Msg("Submit: concurrent submission already recorded, returning unchanged")
			current, err := s.attemptRepo.FindByID(attemptID)
			if err != nil {
				return nil, err
			}
			return newAttemptSubmittedDTO(current), nil
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Submit: failed to persist submission")
		return nil, err
	}

	log.Info().Uint("attemptID", attemptID).Int("answers", len(batch)).Int("maxScore", maxScore).
		Msg("Submit: attempt submitted, awaiting review")
	return newAttemptSubmittedDTO(attempt), nil
}

func newAttemptStartedDTO(attempt *model.Attempt, assessment *model.Assessment, resumed bool) *dto.AttemptStartedDTO {
	return &dto.AttemptStartedDTO{
		AttemptID:    attempt.ID,
		AssessmentID: attempt.AssessmentID,
		LearnerID:    attempt.LearnerID,
		StartedAt:    attempt.StartedAt,
		Deadline:     attempt.Deadline(assessment),
		Status:       string(attempt.Status),
		Resumed:      resumed,
	}
}

func newAttemptSubmittedDTO(attempt *model.Attempt) *dto.AttemptSubmittedDTO {
	return &dto.AttemptSubmittedDTO{
		AttemptID: attempt.ID,
		EndedAt:   attempt.EndedAt,
		MaxScore:  attempt.MaxScore,
		Status:    string(attempt.Status),
	}
}
