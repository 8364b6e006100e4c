package service

import (
	"testing"
	"time"

	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/authz"
	"github.com/ltanphat/gradewell/internal/dto"
	"github.com/ltanphat/gradewell/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResultOwnerNeedsNoReviewGrant(t *testing.T) {
	permissive := newFixture(authz.NewPermitAll())
	permissive.seedAssessment(1, nil, nil, 4)
	attemptID := submitAttempt(t, permissive, 1, 7, 101)

	// The owner reads their own result even when the authorizer grants nothing.
	restricted := NewAttemptQueryService(permissive.store.Assessments(), permissive.store.Attempts(), permissive.store.Answers(), denyAllAuthorizer{})
	result, err := restricted.GetResult(attemptID, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), result.LearnerID)
	assert.True(t, result.PendingReview)
	require.Len(t, result.Answers, 1)
	assert.Equal(t, "Question 1", result.Answers[0].Prompt)
}

func TestGetResultStrangerForbidden(t *testing.T) {
	permissive := newFixture(authz.NewPermitAll())
	permissive.seedAssessment(1, nil, nil, 4)
	attemptID := submitAttempt(t, permissive, 1, 7, 101)

	restricted := NewAttemptQueryService(permissive.store.Assessments(), permissive.store.Attempts(), permissive.store.Answers(), denyAllAuthorizer{})
	_, err := restricted.GetResult(attemptID, 8)
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestGetResultReviewerAllowed(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 4)
	attemptID := submitAttempt(t, f, 1, 7, 101)

	result, err := f.queries.GetResult(attemptID, 30)
	require.NoError(t, err)
	assert.Equal(t, "Algebra Midterm", result.AssessmentTitle)
}

func TestGetResultAfterGrading(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 5, 3)
	attemptID := submitAttempt(t, f, 1, 7, 101, 102)

	_, err := f.grading.Grade(attemptID, 30, []dto.AnswerAwardDTO{
		{QuestionID: 101, Points: 5},
		{QuestionID: 102, Points: 1},
	})
	require.NoError(t, err)

	result, err := f.queries.GetResult(attemptID, 7)
	require.NoError(t, err)
	assert.Equal(t, string(model.AttemptGraded), result.Status)
	assert.False(t, result.PendingReview)
	require.NotNil(t, result.Score)
	assert.Equal(t, 6, *result.Score)
	require.Len(t, result.Answers, 2)
	assert.True(t, result.Answers[0].Correct)
	assert.False(t, result.Answers[1].Correct)
}

func TestGetResultUnknownAttempt(t *testing.T) {
	f := newFixture(authz.NewPermitAll())

	_, err := f.queries.GetResult(42, 7)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListByLearnerNewestFirst(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 4)
	f.seedAssessment(2, nil, nil, 6)

	first, err := f.lifecycle.Start(1, 7)
	require.NoError(t, err)
	f.advance(10 * time.Minute)
	second, err := f.lifecycle.Start(2, 7)
	require.NoError(t, err)

	// Another learner's attempt must not leak into the listing.
	_, err = f.lifecycle.Start(1, 8)
	require.NoError(t, err)

	summaries, err := f.queries.ListByLearner(7)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, second.AttemptID, summaries[0].ID)
	assert.Equal(t, first.AttemptID, summaries[1].ID)
	assert.Equal(t, "Algebra Midterm", summaries[0].AssessmentTitle)
}

func TestListByLearnerEmpty(t *testing.T) {
	f := newFixture(authz.NewPermitAll())

	summaries, err := f.queries.ListByLearner(7)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestListByAssessmentForbidden(t *testing.T) {
	permissive := newFixture(authz.NewPermitAll())
	permissive.seedAssessment(1, nil, nil, 4)
	submitAttempt(t, permissive, 1, 7, 101)

	restricted := NewAttemptQueryService(permissive.store.Assessments(), permissive.store.Attempts(), permissive.store.Answers(), denyAllAuthorizer{})
	_, err := restricted.ListByAssessment(1, 30)
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestListByAssessmentUnknownAssessment(t *testing.T) {
	f := newFixture(authz.NewPermitAll())

	_, err := f.queries.ListByAssessment(42, 30)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListPendingReviewOldestSubmissionFirst(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 4)

	early := submitAttempt(t, f, 1, 7, 101)
	f.advance(5 * time.Minute)
	late := submitAttempt(t, f, 1, 8, 101)

	// An in-progress attempt never shows up in the queue.
	_, err := f.lifecycle.Start(1, 9)
	require.NoError(t, err)

	queue, err := f.queries.ListPendingReview(30, 0)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, early, queue[0].ID)
	assert.Equal(t, late, queue[1].ID)
	assert.Equal(t, string(model.AttemptSubmitted), queue[0].Status)
}

func TestListPendingReviewHonorsLimit(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 4)

	for learner := uint(1); learner <= 5; learner++ {
		submitAttempt(t, f, 1, learner, 101)
		f.advance(time.Minute)
	}

	queue, err := f.queries.ListPendingReview(30, 2)
	require.NoError(t, err)
	assert.Len(t, queue, 2)
}

func TestListPendingReviewExcludesGraded(t *testing.T) {
	f := newFixture(authz.NewPermitAll())
	f.seedAssessment(1, nil, nil, 4)

	graded := submitAttempt(t, f, 1, 7, 101)
	pending := submitAttempt(t, f, 1, 8, 101)
	_, err := f.grading.Grade(graded, 30, nil)
	require.NoError(t, err)

	queue, err := f.queries.ListPendingReview(30, 0)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending, queue[0].ID)
}

func TestListPendingReviewFiltersByReviewGrant(t *testing.T) {
	permissive := newFixture(authz.NewPermitAll())
	permissive.seedAssessment(1, nil, nil, 4)
	submitAttempt(t, permissive, 1, 7, 101)

	restricted := NewAttemptQueryService(permissive.store.Assessments(), permissive.store.Attempts(), permissive.store.Answers(), denyAllAuthorizer{})
	queue, err := restricted.ListPendingReview(30, 0)
	require.NoError(t, err)
	assert.Empty(t, queue)
}
