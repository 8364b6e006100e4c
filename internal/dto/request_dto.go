package dto

// AttemptStartDTO identifies the learner starting (or resuming) an attempt.
// The learner id is carried explicitly until the gateway injects it from the
// session.
type AttemptStartDTO struct {
	LearnerID uint `json:"learner_id" binding:"required"`
}

// AnswerSubmissionDTO is one free-text response within a submission.
type AnswerSubmissionDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Text       string `json:"text"`
}

// AttemptSubmitDTO is the full submission for an attempt. An empty answer
// list is a valid submission (the learner ran out of time or gave up).
type AttemptSubmitDTO struct {
	LearnerID uint                  `json:"learner_id" binding:"required"`
	Answers   []AnswerSubmissionDTO `json:"answers" binding:"omitempty,dive"`
}

// AnswerAwardDTO is a reviewer's score for one answered question.
type AnswerAwardDTO struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Points     int  `json:"points" binding:"min=0"`
}

// AttemptGradeDTO is the reviewer's full grading batch for an attempt. An
// empty batch is valid: the reviewer skipped every question and the attempt
// finalizes with the awards already on record.
type AttemptGradeDTO struct {
	ReviewerID uint             `json:"reviewer_id" binding:"required"`
	Awards     []AnswerAwardDTO `json:"awards" binding:"omitempty,dive"`
}
