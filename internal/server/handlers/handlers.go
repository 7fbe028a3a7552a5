package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/billing"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/registry"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/reminders"
)

// respondError maps service failures to wire-level status codes:
// validation failures to 400, missing entities to 404, everything else to
// a logged 500 with a generic body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, billing.ErrInvalidInput),
		errors.Is(err, registry.ErrInvalidInput),
		errors.Is(err, reminders.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body",
		zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
