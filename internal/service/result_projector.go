package service

import (
	"sort"

	"github.com/jinzhu/copier"
	"github.com/ltanphat/gradewell/internal/dto"
	"github.com/ltanphat/gradewell/internal/model"
)

const missingQuestionPrompt = "(question no longer available)"

// ProjectResult builds the display-ready view of an attempt. It is a pure
// function: no side effects, identical output for identical input. Both the
// learner result view and the reviewer grading view render from it.
//
// An answer whose question has disappeared from the authoring side is still
// rendered, with a placeholder prompt and a zero point value; the attempt's
// stored max score stays authoritative.
func ProjectResult(attempt *model.Attempt, answers []model.Answer, questions []model.Question) dto.AttemptResultDTO {
	var result dto.AttemptResultDTO
	_ = copier.Copy(&result, attempt)
	result.Status = string(attempt.Status)
	result.PendingReview = attempt.Status == model.AttemptSubmitted
	if attempt.Assessment.ID != 0 {
		result.AssessmentTitle = attempt.Assessment.Title
	}

	questionByID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	rows := make([]dto.AnswerResultDTO, 0, len(answers))
	for _, answer := range answers {
		row := dto.AnswerResultDTO{
			QuestionID:    answer.QuestionID,
			Text:          answer.Text,
			AwardedPoints: answer.AwardedPoints,
		}
		if question, ok := questionByID[answer.QuestionID]; ok {
			row.Prompt = question.Prompt
			row.QuestionPoints = question.Points
			row.Correct = answer.AwardedPoints != nil && *answer.AwardedPoints == question.Points
		} else {
			row.Prompt = missingQuestionPrompt
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		qi, oki := questionByID[rows[i].QuestionID]
		qj, okj := questionByID[rows[j].QuestionID]
		if oki && okj {
			return qi.OrderIndex < qj.OrderIndex
		}
		if oki != okj {
			return oki // orphaned answers sort last
		}
		return rows[i].QuestionID < rows[j].QuestionID
	})

	result.Answers = rows
	return result
}
