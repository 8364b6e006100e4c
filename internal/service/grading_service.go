package service

import (
	"fmt"

	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/authz"
	"github.com/ltanphat/gradewell/internal/dto"
	"github.com/ltanphat/gradewell/internal/model"
	"github.com/ltanphat/gradewell/internal/repository"
	"github.com/rs/zerolog/log"
)

// GradingService applies reviewer-supplied awards to a submitted attempt.
// Grading is all-or-nothing: the whole batch is validated before any answer
// is mutated, and it is not re-entrant — a GRADED attempt stays GRADED.
type GradingService interface {
	Grade(attemptID, reviewerID uint, awards []dto.AnswerAwardDTO) (*dto.AttemptGradedDTO, error)
}

type gradingService struct {
	assessmentRepo repository.AssessmentRepository
	attemptRepo    repository.AttemptRepository
	authorizer     authz.Authorizer
}

func NewGradingService(
	assessmentRepo repository.AssessmentRepository,
	attemptRepo repository.AttemptRepository,
	authorizer authz.Authorizer,
) GradingService {
	return &gradingService{
		assessmentRepo: assessmentRepo,
		attemptRepo:    attemptRepo,
		authorizer:     authorizer,
	}
}

func (s *gradingService) Grade(attemptID, reviewerID uint, awards []dto.AnswerAwardDTO) (*dto.AttemptGradedDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.assessmentRepo.FindByIDWithQuestions(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.CanReview(reviewerID, assessment) {
		log.Warn().Uint("attemptID", attemptID).Uint("reviewerID", reviewerID).
			Msg("Grade: reviewer not authorized for assessment")
		return nil, fmt.Errorf("reviewer %d is not authorized for assessment %d: %w",
			reviewerID, assessment.ID, apperror.ErrForbidden)
	}

	if attempt.Status != model.AttemptSubmitted {
		log.Warn().Uint("attemptID", attemptID).Str("status", string(attempt.Status)).
			Msg("Grade: attempt is not awaiting review")
		return nil, fmt.Errorf("attempt %d has status %s: %w",
			attemptID, attempt.Status, apperror.ErrNotGradable)
	}

	answerByQuestion := make(map[uint]*model.Answer, len(attempt.Answers))
	for i := range attempt.Answers {
		answerByQuestion[attempt.Answers[i].QuestionID] = &attempt.Answers[i]
	}

	// Validate the whole batch before mutating anything.
	type pendingAward struct {
		answer *model.Answer
		points int
	}
	pending := make([]pendingAward, 0, len(awards))
	for _, award := range awards {
		answer, ok := answerByQuestion[award.QuestionID]
		if !ok {
			// Stale question reference from the grading view; the authoring
			// side may have replaced the question set since submission.
			log.Warn().Uint("attemptID", attemptID).Uint("questionID", award.QuestionID).
				Msg("Grade: no answer for question, skipping award")
			continue
		}
		question, ok := assessment.QuestionByID(award.QuestionID)
		if !ok {
			if answer.Question.ID == 0 {
				log.Warn().Uint("attemptID", attemptID).Uint("questionID", award.QuestionID).
					Msg("Grade: question no longer resolvable, skipping award")
				continue
			}
			question = answer.Question
		}
		if award.Points < 0 || award.Points > question.Points {
			return nil, fmt.Errorf("award %d for question %d must be between 0 and %d: %w",
				award.Points, question.ID, question.Points, apperror.ErrInvalidScore)
		}
		pending = append(pending, pendingAward{answer: answer, points: award.Points})
	}

	graded := make([]model.Answer, 0, len(pending))
	for _, p := range pending {
		points := p.points
		p.answer.AwardedPoints = &points
		graded = append(graded, *p.answer)
	}

	// Answers the reviewer skipped keep a nil award and contribute nothing
	// to the aggregate.
	total := 0
	for i := range attempt.Answers {
		if attempt.Answers[i].AwardedPoints != nil {
			total += *attempt.Answers[i].AwardedPoints
		}
	}

	attempt.Score = &total
	attempt.Status = model.AttemptGraded

	if err := s.attemptRepo.ApplyGrades(attempt, graded); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Grade: failed to persist grades")
		return nil, err
	}

	log.Info().Uint("attemptID", attemptID).Uint("reviewerID", reviewerID).
		Int("score", total).Msg("Grade: attempt graded")
	return &dto.AttemptGradedDTO{
		AttemptID: attempt.ID,
		Score:     attempt.Score,
		MaxScore:  attempt.MaxScore,
		Status:    string(attempt.Status),
	}, nil
}
