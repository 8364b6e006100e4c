// Package controller holds the helpers shared by the learner and reviewer
// HTTP controllers.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ltanphat/gradewell/internal/apperror"
	"github.com/ltanphat/gradewell/internal/dto"
)

// WriteError maps a domain error to its HTTP status and writes the uniform
// error body. Lifecycle conflicts are 409 so callers can tell "you already
// have one" apart from a broken request or a server fault.
func WriteError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperror.ErrAlreadyInProgress),
		errors.Is(err, apperror.ErrAlreadyCompleted),
		errors.Is(err, apperror.ErrAttemptExpired),
		errors.Is(err, apperror.ErrPastDue),
		errors.Is(err, apperror.ErrNotGradable):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidScore):
		status = http.StatusUnprocessableEntity
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

// ParseIDParam parses a positive integer path parameter.
func ParseIDParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(value), true
}

// ParseIDQuery parses a required positive integer query parameter.
func ParseIDQuery(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Query(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing " + name + " query parameter"})
		return 0, false
	}
	return uint(value), true
}
