package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/getsentry/sentry-go"

	"github.com/coopregistry/coopregistry-api/internal/services"
	"github.com/coopregistry/coopregistry-api/pkg/logger"
)

// respondError translates a service error into the HTTP error taxonomy.
// Responses carry a machine-readable label and a human-readable message;
// unexpected errors are reported to Sentry and never leak internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": err.Error()})
	case errors.Is(err, services.ErrSocietyNotApproved):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": err.Error()})
	case errors.Is(err, services.ErrDuplicate), errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": err.Error()})
	default:
		logger.Error("unhandled error", "path", c.FullPath(), "error", err)
		sentry.CaptureException(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal",
			"message": "Error interno del servidor",
		})
	}
}

// requestMeta extracts the request provenance used by the audit recorder
func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
