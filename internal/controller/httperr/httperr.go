// Package httperr maps service-layer failures to HTTP responses so every
// controller reports the same status for the same class of error.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellcheck_backend/internal/apperr"
	"wellcheck_backend/internal/dto"
)

// Status returns the HTTP status for a service error.
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrWrongRecipient):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrIncompleteSubmission),
		errors.Is(err, apperr.ErrQuestionNotInQuestionnaire),
		errors.Is(err, apperr.ErrInvalidChoice):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error as a JSON ErrorResponse. Internal errors hide the
// underlying message behind msg; client errors surface it as a detail.
func Respond(ctx *gin.Context, err error, msg string) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		ctx.JSON(status, dto.ErrorResponse{Message: msg})
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: msg, Details: []string{err.Error()}})
}
