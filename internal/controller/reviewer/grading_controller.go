package reviewer

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ltanphat/gradewell/internal/controller"
	"github.com/ltanphat/gradewell/internal/dto"
	"github.com/ltanphat/gradewell/internal/service"
	"github.com/rs/zerolog/log"
)

// GradingController serves the reviewer-facing operations: grading and
// attempt listings.
type GradingController struct {
	gradingService service.GradingService
	queryService   service.AttemptQueryService
}

func NewGradingController(gradingService service.GradingService, queryService service.AttemptQueryService) *GradingController {
	return &GradingController{
		gradingService: gradingService,
		queryService:   queryService,
	}
}

// GradeAttempt godoc
// @Summary (Reviewer) Grade a submitted attempt
// @Description Applies per-question awards to a SUBMITTED attempt and finalizes it as GRADED. The batch is all-or-nothing: one out-of-range award rejects the whole call with no answer mutated. Grading is not re-entrant.
// @Tags Reviewer - Grading
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.AttemptGradeDTO true "Per-question awards"
// @Success 200 {object} dto.AttemptGradedDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not awaiting review"
// @Failure 422 {object} dto.ErrorResponse "Award outside [0, question points]"
// @Router /attempts/{attempt_id}/grade [post]
func (c *GradingController) GradeAttempt(ctx *gin.Context) {
	attemptID, ok := controller.ParseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.AttemptGradeDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	graded, err := c.gradingService.Grade(attemptID, req.ReviewerID, req.Awards)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Uint("reviewerID", req.ReviewerID).
			Msg("GradeAttempt: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, graded)
}

// GetAssessmentAttempts godoc
// @Summary (Reviewer) List attempts against an assessment
// @Description All attempts for one assessment, newest first, for the reviewer's grading overview.
// @Tags Reviewer - Grading
// @Produce json
// @Param assessment_id path int true "Assessment ID"
// @Param reviewer_id query int true "Reviewer ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assessments/{assessment_id}/attempts [get]
func (c *GradingController) GetAssessmentAttempts(ctx *gin.Context) {
	assessmentID, ok := controller.ParseIDParam(ctx, "assessment_id")
	if !ok {
		return
	}
	reviewerID, ok := controller.ParseIDQuery(ctx, "reviewer_id")
	if !ok {
		return
	}

	attempts, err := c.queryService.ListByAssessment(assessmentID, reviewerID)
	if err != nil {
		log.Warn().Err(err).Uint("assessmentID", assessmentID).Uint("reviewerID", reviewerID).
			Msg("GetAssessmentAttempts: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetPendingReview godoc
// @Summary (Reviewer) List attempts awaiting review
// @Description Submitted attempts the reviewer may grade, oldest submission first.
// @Tags Reviewer - Grading
// @Produce json
// @Param reviewer_id query int true "Reviewer ID"
// @Param limit query int false "Maximum number of attempts (default 20)"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attempts/pending-review [get]
func (c *GradingController) GetPendingReview(ctx *gin.Context) {
	reviewerID, ok := controller.ParseIDQuery(ctx, "reviewer_id")
	if !ok {
		return
	}

	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit query parameter"})
			return
		}
		limit = parsed
	}

	attempts, err := c.queryService.ListPendingReview(reviewerID, limit)
	if err != nil {
		log.Error().Err(err).Uint("reviewerID", reviewerID).Msg("GetPendingReview: service error")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
