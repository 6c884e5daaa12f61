package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-auction-engine/internal/api/shared/errors"
	"github.com/feral-file/ff-auction-engine/internal/logger"
)

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errors.NewValidationError(message))
}

// respondInternalError responds with an internal server error and logs the cause
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(message))
}

// respondServiceError maps a service error to its status code.
// Errors without a caller-visible kind are internal.
func respondServiceError(c *gin.Context, err error, message string, fields ...zap.Field) {
	apiErr := errors.FromDomain(err)
	if apiErr == nil {
		respondInternalError(c, err, message, fields...)
		return
	}

	status := http.StatusBadRequest
	switch apiErr.Code {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeConflict:
		status = http.StatusConflict
		logger.WarnCtx(c.Request.Context(), message, append(fields, zap.Error(err))...)
	}
	c.JSON(status, apiErr)
}
