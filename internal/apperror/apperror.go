// Package apperror defines the domain error kinds reported by the attempt
// engine. Callers classify failures with errors.Is; call sites add context
// with fmt.Errorf("...: %w", ...).
package apperror

import "errors"

var (
	// ErrNotFound covers unknown assessments, attempts and questions.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the caller does not own, or is not
	// authorized for, the resource it addresses.
	ErrForbidden = errors.New("not authorized for this resource")

	// ErrAlreadyInProgress is surfaced by the store when a concurrent start
	// loses the race for the single active attempt per learner/assessment.
	ErrAlreadyInProgress = errors.New("an attempt is already in progress")

	// ErrAlreadyCompleted rejects starting an assessment the learner has
	// already submitted or had graded.
	ErrAlreadyCompleted = errors.New("assessment has already been completed")

	// ErrAttemptExpired rejects resuming an in-progress attempt whose time
	// limit has elapsed.
	ErrAttemptExpired = errors.New("attempt time limit has expired")

	// ErrPastDue rejects a fresh start after the assessment due date.
	ErrPastDue = errors.New("assessment due date has passed")

	// ErrInvalidScore rejects a grading batch containing an award outside
	// [0, question points]. No answer is mutated.
	ErrInvalidScore = errors.New("awarded points out of range")

	// ErrNotGradable rejects grading an attempt that is not awaiting review,
	// whether still in progress or already graded.
	ErrNotGradable = errors.New("attempt is not awaiting grading")
)
