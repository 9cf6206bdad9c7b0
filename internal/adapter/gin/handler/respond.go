package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "sps-user-service/pkg/errors"
)

// respondError translates a service error into an HTTP response. Typed
// errors carry their own status code and client-safe message; anything
// else is logged with full detail and reported as a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var internalErr *apperrors.InternalError
	if errors.As(err, &internalErr) {
		log.Error("internal error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Details) > 0 {
		c.JSON(validationErr.HTTPStatus(), gin.H{
			"error":   validationErr.Message,
			"details": validationErr.Details,
		})
		return
	}

	var statusErr apperrors.HTTPStatuser
	if errors.As(err, &statusErr) {
		c.JSON(statusErr.HTTPStatus(), gin.H{"error": err.Error()})
		return
	}

	log.Error("unexpected error", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// respondBadJSON reports a malformed request body.
func respondBadJSON(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("invalid request body", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
}
