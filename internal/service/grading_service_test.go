package service

import (
	"sync"
	"testing"

	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/authz"
	"github.com/ltanphat/gradewell/internal/dto"
	"github.com/ltanphat/gradewell/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// submitAttempt drives a learner through start and submit, answering every
// seeded question, and returns the attempt id.
func submitAttempt(t *testing.T, f *fixture, assessmentID, learnerID uint, questionIDs ...uint) uint {
	t.Helper()
	started, err := f.lifecycle.Start(assessmentID, learnerID)
	require.NoError(t, err)
	answers := make([]dto.AnswerSubmissionDTO, len(questionIDs))
	for i, qid := range questionIDs {
		answers[i] = dto.AnswerSubmissionDTO{QuestionID: qid, Text: "answer"}
	}
	_, err = f.lifecycle.Submit(started.AttemptID, learnerID, answers)
	require.NoError(t, err)
	return started.AttemptID
}

func TestGradeAggregatesAwards(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5, 3, 2)
	attemptID := submitAttempt(t, f, 1, 7, 101, 102, 103)

	graded, err := f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{
		{QuestionID: 101, Points: 5},
		{QuestionID: 102, Points: 0},
		{QuestionID: 103, Points: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.AttemptGraded), graded.Status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 7, *graded.Score)
	require.NotNil(t, graded.MaxScore)
	assert.Equal(t, 10, *graded.MaxScore)

	stored, err := f.store.Attempts().FindByIDWithAnswers(attemptID)
	require.NoError(t, err)
	awards := map[uint]*int{}
	for _, answer := range stored.Answers {
		awards[answer.QuestionID] = answer.AwardedPoints
	}
	require.NotNil(t, awards[101])
	assert.Equal(t, 5, *awards[101])
	require.NotNil(t, awards[102])
	assert.Equal(t, 0, *awards[102], "an explicit zero award is recorded, not dropped")
	require.NotNil(t, awards[103])
	assert.Equal(t, 2, *awards[103])
}

func TestGradeRejectsAwardAboveQuestionPoints(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5, 3)
	attemptID := submitAttempt(t, f, 1, 7, 101, 102)

	_, err := f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{
		{QuestionID: 101, Points: 4},
		{QuestionID: 102, Points: 9},
	})
	require.ErrorIs(t, err, apperror.ErrInvalidScore)

	// All-or-nothing: the valid award in the same batch must not have been
	// applied either.
	stored, err := f.store.Attempts().FindByIDWithAnswers(attemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, stored.Status)
	for _, answer := range stored.Answers {
		assert.Nil(t, answer.AwardedPoints)
	}
}

func TestGradeRejectsNegativeAward(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5)
	attemptID := submitAttempt(t, f, 1, 7, 101)

	_, err := f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{{QuestionID: 101, Points: -1}})
	require.ErrorIs(t, err, apperror.ErrInvalidScore)
}

func TestGradeInProgressAttempt(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5)
	started, err := f.lifecycle.Start(1, 7)
	require.NoError(t, err)

	_, err = f.grading.Grade(started.AttemptID, 30, []dto.AnswerAwardDTO{{QuestionID: 101, Points: 3}})
	require.ErrorIs(t, err, apperror.ErrNotGradable)
}

func TestGradeIsNotReentrant(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5)
	attemptID := submitAttempt(t, f, 1, 7, 101)

	_, err := f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{{QuestionID: 101, Points: 3}})
	require.NoError(t, err)

	_, err = f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{{QuestionID: 101, Points: 5}})
	require.ErrorIs(t, err, apperror.ErrNotGradable)

	stored, err := f.store.Attempts().FindByIDWithAnswers(attemptID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 3, *stored.Score, "a graded attempt keeps its original score")
}

func TestGradeSkipsAwardWithoutAnswer(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5, 3)
	attemptID := submitAttempt(t, f, 1, 7, 101)

	graded, err := f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{
		{QuestionID: 101, Points: 4},
		{QuestionID: 102, Points: 3}, // never answered; stale grading view
	})
	require.NoError(t, err, "a stale question reference must not fail the batch")
	require.NotNil(t, graded.Score)
	assert.Equal(t, 4, *graded.Score)
}

func TestGradeSkipsRemovedQuestion(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5, 3)
	attemptID := submitAttempt(t, f, 1, 7, 101, 102)

	// The authoring side replaced the question set after submission.
	f.store.RemoveQuestion(1, 102)

	graded, err := f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{
		{QuestionID: 101, Points: 5},
		{QuestionID: 102, Points: 3},
	})
	require.NoError(t, err)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 5, *graded.Score, "the unresolvable question's award is skipped")
}

func TestGradeLeavesSkippedAnswersUnawarded(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5, 3)
	attemptID := submitAttempt(t, f, 1, 7, 101, 102)

	graded, err := f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{{QuestionID: 101, Points: 2}})
	require.NoError(t, err)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 2, *graded.Score)

	stored, err := f.store.Attempts().FindByIDWithAnswers(attemptID)
	require.NoError(t, err)
	for _, answer := range stored.Answers {
		if answer.QuestionID == 102 {
			assert.Nil(t, answer.AwardedPoints, "skipped answers are not auto-zeroed in storage")
		}
	}
}

func TestConcurrentGradesApplyExactlyOnce(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5)
	attemptID := submitAttempt(t, f, 1, 7, 101)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{{QuestionID: 101, Points: 3}})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, apperror.ErrNotGradable)
		}
	}
	assert.Equal(t, 1, successes, "exactly one grade write lands")

	stored, err := f.store.Attempts().FindByID(attemptID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptGraded, stored.Status)
	require.NotNil(t, stored.Score)
	assert.Equal(t, 3, *stored.Score)
}

func TestGradeForbiddenReviewer(t *testing.T) {
	permissive := newFixture(authz.NewPermitAll())
	permissive.seedAssessment(1, nil, nil, 5)
	attemptID := submitAttempt(t, permissive, 1, 7, 101)

	restricted := NewGradingService(permissive.store.Assessments(), permissive.store.Attempts(), denyAllAuthorizer{})
	_, err := restricted.Grade(attemptID, 30, []dto.AnswerAwardDTO{{QuestionID: 101, Points: 3}})
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestGradeUnknownAttempt(t *testing.T) {
	f := newFixture(authz.NewPermitAll())

	_, err := f.grading.Grade(42, 30, nil)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

// Full happy path: start -> submit -> grade, the core two-phase pipeline.
func TestAttemptPipelineHappyPath(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 4)

	started, err := f.lifecycle.Start(1, 7)
	require.NoError(t, err)
	assert.Equal(t, string(model.AttemptInProgress), started.Status)

	submitted, err := f.lifecycle.Submit(started.AttemptID, 7, []dto.AnswerSubmissionDTO{
		{QuestionID: 101, Text: "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.AttemptSubmitted), submitted.Status)
	require.NotNil(t, submitted.MaxScore)
	assert.Equal(t, 4, *submitted.MaxScore)

	stored, err := f.store.Attempts().FindByID(started.AttemptID)
	require.NoError(t, err)
	assert.Nil(t, stored.Score)

	graded, err := f.grading.Grade(started.AttemptID, 30, []dto.AnswerAwardDTO{{QuestionID: 101, Points: 3}})
	require.NoError(t, err)
	assert.Equal(t, string(model.AttemptGraded), graded.Status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 3, *graded.Score)
}
