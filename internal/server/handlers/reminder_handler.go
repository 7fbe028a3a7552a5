package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/reminders"
)

// ReminderHandler serves the reminder endpoints.
type ReminderHandler struct {
	svc    *reminders.Service
	logger *zap.Logger
}

// NewReminderHandler constructs the HTTP handler adapter.
func NewReminderHandler(svc *reminders.Service, logger *zap.Logger) *ReminderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderHandler{svc: svc, logger: logger}
}

// List returns reminders, filtered by colony, apiary, completion and the
// upcoming window.
func (h *ReminderHandler) List(c *gin.Context) {
	filter := repository.ReminderFilter{
		ColonyID: c.Query("samhalleId"),
		ApiaryID: c.Query("bigardId"),
	}
	if raw := c.Query("utford"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "utford must be a boolean"})
			return
		}
		filter.Done = &done
	}
	if raw := c.Query("upcoming"); raw != "" {
		upcoming, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "upcoming must be a boolean"})
			return
		}
		filter.Upcoming = upcoming
	}
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		filter.UpcomingDays = days
	}

	list, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create stores a new reminder.
func (h *ReminderHandler) Create(c *gin.Context) {
	var in reminders.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	reminder, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

// Get returns one reminder.
func (h *ReminderHandler) Get(c *gin.Context) {
	reminder, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// updatePayload is the PUT body: the editable fields plus the completion
// toggle. A body carrying only utford flips completion without touching
// the rest; completing a recurring reminder schedules the next one.
type updatePayload struct {
	reminders.Input
	Done *bool `json:"utford"`
}

// Update rewrites a reminder and/or toggles its completion.
func (h *ReminderHandler) Update(c *gin.Context) {
	var payload updatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	id := c.Param("id")
	if payload.Title != "" {
		if _, err := h.svc.Update(c.Request.Context(), id, payload.Input); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}
	if payload.Done != nil {
		reminder, err := h.svc.SetDone(c.Request.Context(), id, *payload.Done)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, reminder)
		return
	}

	reminder, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// Delete removes a reminder.
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
