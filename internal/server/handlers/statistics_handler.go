package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/statistics"
)

// StatisticsHandler serves the dashboard rollup endpoint.
type StatisticsHandler struct {
	svc    *statistics.Service
	logger *zap.Logger
}

// NewStatisticsHandler constructs the HTTP handler adapter.
func NewStatisticsHandler(svc *statistics.Service, logger *zap.Logger) *StatisticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsHandler{svc: svc, logger: logger}
}

// Yearly computes the statistics report for ?year= (default: current
// year).
func (h *StatisticsHandler) Yearly(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		year = parsed
	}

	report, err := h.svc.Yearly(c.Request.Context(), year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
