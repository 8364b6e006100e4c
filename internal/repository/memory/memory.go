// Package memory provides the reference implementation of the attempt store
// contracts. A single mutex serializes every operation, which is exactly the
// atomicity the contracts ask for; the postgres implementation gets the same
// guarantees from transactions and the active-attempt unique index. The
// service tests run against this store.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/model"
	"github.com/ltanphat/gradewell/internal/repository"
)

// Store holds all aggregates behind one mutex. The per-aggregate views
// returned by Assessments, Attempts and Answers satisfy the repository
// contracts.
type Store struct {
	mu            sync.Mutex
	assessments   map[uint]model.Assessment
	attempts      map[uint]model.Attempt
	answers       map[uint][]model.Answer // keyed by attempt id
	nextAttemptID uint
	nextAnswerID  uint
}

func New() *Store {
	return &Store{
		assessments: map[uint]model.Assessment{},
		attempts:    map[uint]model.Attempt{},
		answers:     map[uint][]model.Answer{},
	}
}

func (s *Store) Assessments() repository.AssessmentRepository { return &assessmentStore{s} }
func (s *Store) Attempts() repository.AttemptRepository       { return &attemptStore{s} }
func (s *Store) Answers() repository.AnswerRepository         { return &answerStore{s} }

// SeedAssessment loads an assessment and its questions, standing in for the
// authoring subsystem's writes.
func (s *Store) SeedAssessment(assessment model.Assessment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[assessment.ID] = assessment
}

// RemoveQuestion drops a question from a seeded assessment, simulating the
// authoring side replacing a question set while attempts already exist.
func (s *Store) RemoveQuestion(assessmentID, questionID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assessment, ok := s.assessments[assessmentID]
	if !ok {
		return
	}
	kept := make([]model.Question, 0, len(assessment.Questions))
	for _, q := range assessment.Questions {
		if q.ID != questionID {
			kept = append(kept, q)
		}
	}
	assessment.Questions = kept
	s.assessments[assessmentID] = assessment
}

type assessmentStore struct{ s *Store }

func (r *assessmentStore) FindByID(id uint) (*model.Assessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assessment, ok := r.s.assessments[id]
	if !ok {
		return nil, fmt.Errorf("assessment %d: %w", id, apperror.ErrNotFound)
	}
	assessment.Questions = nil
	return &assessment, nil
}

func (r *assessmentStore) FindByIDWithQuestions(id uint) (*model.Assessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assessment, ok := r.s.assessments[id]
	if !ok {
		return nil, fmt.Errorf("assessment %d: %w", id, apperror.ErrNotFound)
	}
	questions := make([]model.Question, len(assessment.Questions))
	copy(questions, assessment.Questions)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].OrderIndex < questions[j].OrderIndex
	})
	assessment.Questions = questions
	return &assessment, nil
}

type attemptStore struct{ s *Store }

func (r *attemptStore) CreateActive(attempt *model.Attempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.attempts {
		if existing.LearnerID == attempt.LearnerID && existing.AssessmentID == attempt.AssessmentID {
			return fmt.Errorf("learner %d already holds an attempt for assessment %d: %w",
				attempt.LearnerID, attempt.AssessmentID, apperror.ErrAlreadyInProgress)
		}
	}
	r.s.nextAttemptID++
	attempt.ID = r.s.nextAttemptID
	r.s.attempts[attempt.ID] = *attempt
	return nil
}

func (r *attemptStore) FindByID(id uint) (*model.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	attempt, ok := r.s.attempts[id]
	if !ok {
		return nil, fmt.Errorf("attempt %d: %w", id, apperror.ErrNotFound)
	}
	return &attempt, nil
}

func (r *attemptStore) FindByIDWithAnswers(id uint) (*model.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	attempt, ok := r.s.attempts[id]
	if !ok {
		return nil, fmt.Errorf("attempt %d: %w", id, apperror.ErrNotFound)
	}
	attempt.Assessment = r.s.assessmentForLocked(attempt.AssessmentID)
	attempt.Answers = r.s.answersForLocked(id)
	return &attempt, nil
}

func (r *attemptStore) FindByLearnerAndAssessment(learnerID, assessmentID uint) (*model.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, attempt := range r.s.attempts {
		if attempt.LearnerID == learnerID && attempt.AssessmentID == assessmentID {
			found := attempt
			return &found, nil
		}
	}
	return nil, fmt.Errorf("no attempt for learner %d on assessment %d: %w",
		learnerID, assessmentID, apperror.ErrNotFound)
}

func (r *attemptStore) SubmitAnswers(attempt *model.Attempt, answers []model.Answer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.attempts[attempt.ID]
	if !ok {
		return fmt.Errorf("attempt %d: %w", attempt.ID, apperror.ErrNotFound)
	}
	if stored.Status != model.AttemptInProgress {
		// A concurrent submit already flipped the status; the recorded
		// answer set is final.
		return fmt.Errorf("attempt %d already left %s: %w",
			attempt.ID, model.AttemptInProgress, apperror.ErrAlreadyCompleted)
	}
	batch := make([]model.Answer, len(answers))
	for i := range answers {
		r.s.nextAnswerID++
		answers[i].ID = r.s.nextAnswerID
		answers[i].AttemptID = attempt.ID
		batch[i] = answers[i]
		batch[i].Question = model.Question{}
	}
	r.s.answers[attempt.ID] = batch
	stored.EndedAt = attempt.EndedAt
	stored.MaxScore = attempt.MaxScore
	stored.Score = attempt.Score
	stored.Status = attempt.Status
	r.s.attempts[attempt.ID] = stored
	return nil
}

func (r *attemptStore) ApplyGrades(attempt *model.Attempt, answers []model.Answer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.attempts[attempt.ID]
	if !ok {
		return fmt.Errorf("attempt %d: %w", attempt.ID, apperror.ErrNotFound)
	}
	if stored.Status != model.AttemptSubmitted {
		return fmt.Errorf("attempt %d is not awaiting grading: %w",
			attempt.ID, apperror.ErrNotGradable)
	}
	batch := r.s.answers[attempt.ID]
	for _, graded := range answers {
		for i := range batch {
			if batch[i].ID == graded.ID {
				batch[i].AwardedPoints = graded.AwardedPoints
			}
		}
	}
	r.s.answers[attempt.ID] = batch
	stored.Score = attempt.Score
	stored.Status = attempt.Status
	r.s.attempts[attempt.ID] = stored
	return nil
}

func (r *attemptStore) FindByLearner(learnerID uint) ([]model.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var attempts []model.Attempt
	for _, attempt := range r.s.attempts {
		if attempt.LearnerID == learnerID {
			attempt.Assessment = r.s.assessmentForLocked(attempt.AssessmentID)
			attempts = append(attempts, attempt)
		}
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].StartedAt.After(attempts[j].StartedAt)
	})
	return attempts, nil
}

func (r *attemptStore) FindByAssessment(assessmentID uint) ([]model.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var attempts []model.Attempt
	for _, attempt := range r.s.attempts {
		if attempt.AssessmentID == assessmentID {
			attempts = append(attempts, attempt)
		}
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].StartedAt.After(attempts[j].StartedAt)
	})
	return attempts, nil
}

func (r *attemptStore) FindByStatus(status model.AttemptStatus, limit int) ([]model.Attempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var attempts []model.Attempt
	for _, attempt := range r.s.attempts {
		if attempt.Status == status {
			attempt.Assessment = r.s.assessmentForLocked(attempt.AssessmentID)
			attempts = append(attempts, attempt)
		}
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		ei, ej := attempts[i].EndedAt, attempts[j].EndedAt
		if ei == nil || ej == nil {
			return ei != nil
		}
		return ei.Before(*ej)
	})
	if limit > 0 && len(attempts) > limit {
		attempts = attempts[:limit]
	}
	return attempts, nil
}

type answerStore struct{ s *Store }

func (r *answerStore) FindByAttemptID(attemptID uint) ([]model.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.answersForLocked(attemptID), nil
}

func (s *Store) answersForLocked(attemptID uint) []model.Answer {
	stored := s.answers[attemptID]
	answers := make([]model.Answer, len(stored))
	copy(answers, stored)
	attempt := s.attempts[attemptID]
	assessment := s.assessments[attempt.AssessmentID]
	for i := range answers {
		if q, ok := assessment.QuestionByID(answers[i].QuestionID); ok {
			answers[i].Question = q
		}
	}
	return answers
}

func (s *Store) assessmentForLocked(assessmentID uint) model.Assessment {
	assessment := s.assessments[assessmentID]
	assessment.Questions = nil
	return assessment
}
