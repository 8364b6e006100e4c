package learner

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ltanphat/gradewell/internal/controller"
	"github.com/ltanphat/gradewell/internal/dto"
	"github.com/ltanphat/gradewell/internal/service"
	"github.com/rs/zerolog/log"
)

// AttemptController serves the learner-facing attempt operations: start,
// submit, result view and attempt history.
type AttemptController struct {
	attemptService service.AttemptService
	queryService   service.AttemptQueryService
}

func NewAttemptController(attemptService service.AttemptService, queryService service.AttemptQueryService) *AttemptController {
	return &AttemptController{
		attemptService: attemptService,
		queryService:   queryService,
	}
}

// StartAttempt godoc
// @Summary (Learner) Start or resume an attempt
// @Description Starts a timed attempt against an assessment. While an attempt is in progress, starting again returns it unchanged. An expired in-progress attempt, a completed attempt, or a past-due assessment is refused with 409.
// @Tags Learner - Attempts
// @Accept json
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param body body dto.AttemptStartDTO true "Learner starting the attempt"
// @Success 200 {object} dto.AttemptStartedDTO "Resumed existing in-progress attempt"
// @Success 201 {object} dto.AttemptStartedDTO "Created a new attempt"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already in progress elsewhere, already completed, expired, or past due"
// @Router /assessments/{assessment_id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	assessmentID, ok := controller.ParseIDParam(ctx, "assessment_id")
	if !ok {
		return
	}

	var req dto.AttemptStartDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	started, err := c.attemptService.Start(assessmentID, req.LearnerID)
	if err != nil {
		log.Warn().Err(err).Uint("assessmentID", assessmentID).Uint("learnerID", req.LearnerID).
			Msg("StartAttempt: service error")
		controller.WriteError(ctx, err)
		return
	}

	status := http.StatusCreated
	if started.Resumed {
		status = http.StatusOK
	}
	ctx.JSON(status, started)
}

// SubmitAttempt godoc
// @Summary (Learner) Submit answers for an attempt
// @Description Submits the attempt's free-text answers and moves it to SUBMITTED. A late submission is accepted with its recorded end time clamped at the deadline. Submitting an already-submitted attempt returns it unchanged.
// @Tags Learner - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.AttemptSubmitDTO true "Answers"
// @Success 200 {object} dto.AttemptSubmittedDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another learner"
// @Failure 404 {object} dto.ErrorResponse "Unknown attempt or a question not in the assessment"
// @Router /attempts/{attempt_id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	attemptID, ok := controller.ParseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	submitted, err := c.attemptService.Submit(attemptID, req.LearnerID, req.Answers)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Uint("learnerID", req.LearnerID).
			Msg("SubmitAttempt: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submitted)
}

// GetAttemptResult godoc
// @Summary Get the projected result of an attempt
// @Description Returns the display-ready result: each answer paired with its question, awarded points, and a pending-review flag while grading is outstanding. Requester must be the attempt's learner or an authorized reviewer.
// @Tags Learner - Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param requester_id query int true "Requesting user ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/result [get]
func (c *AttemptController) GetAttemptResult(ctx *gin.Context) {
	attemptID, ok := controller.ParseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	requesterID, ok := controller.ParseIDQuery(ctx, "requester_id")
	if !ok {
		return
	}

	result, err := c.queryService.GetResult(attemptID, requesterID)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Uint("requesterID", requesterID).
			Msg("GetAttemptResult: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetLearnerAttempts godoc
// @Summary (Learner) List a learner's attempts
// @Description Summary of all attempts by a learner across assessments, newest first.
// @Tags Learner - Attempts
// @Produce json
// @Param learner_id path int true "Learner ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /learners/{learner_id}/attempts [get]
func (c *AttemptController) GetLearnerAttempts(ctx *gin.Context) {
	learnerID, ok := controller.ParseIDParam(ctx, "learner_id")
	if !ok {
		return
	}

	attempts, err := c.queryService.ListByLearner(learnerID)
	if err != nil {
		log.Error().Err(err).Uint("learnerID", learnerID).Msg("GetLearnerAttempts: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
