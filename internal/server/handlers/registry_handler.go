package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/registry"
)

// RegistryHandler serves the apiary, colony and event endpoints.
type RegistryHandler struct {
	svc    *registry.Service
	logger *zap.Logger
}

// NewRegistryHandler constructs the HTTP handler adapter.
func NewRegistryHandler(svc *registry.Service, logger *zap.Logger) *RegistryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistryHandler{svc: svc, logger: logger}
}

// ListApiaries returns all apiaries with colony counts.
func (h *RegistryHandler) ListApiaries(c *gin.Context) {
	apiaries, err := h.svc.ListApiaries(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, apiaries)
}

// CreateApiary stores a new apiary.
func (h *RegistryHandler) CreateApiary(c *gin.Context) {
	var in registry.ApiaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	apiary, err := h.svc.CreateApiary(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, apiary)
}

// GetApiary returns one apiary with its colonies.
func (h *RegistryHandler) GetApiary(c *gin.Context) {
	apiary, err := h.svc.GetApiary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, apiary)
}

// UpdateApiary rewrites an apiary.
func (h *RegistryHandler) UpdateApiary(c *gin.Context) {
	var in registry.ApiaryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	apiary, err := h.svc.UpdateApiary(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, apiary)
}

// DeleteApiary removes an apiary unless it still owns colonies.
func (h *RegistryHandler) DeleteApiary(c *gin.Context) {
	if err := h.svc.DeleteApiary(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListColonies returns colonies filtered by apiary and status.
func (h *RegistryHandler) ListColonies(c *gin.Context) {
	filter := repository.ColonyFilter{
		ApiaryID: c.Query("bigardId"),
		Status:   c.Query("status"),
	}
	colonies, err := h.svc.ListColonies(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, colonies)
}

// CreateColony stores a new colony.
func (h *RegistryHandler) CreateColony(c *gin.Context) {
	var in registry.ColonyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	colony, err := h.svc.CreateColony(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, colony)
}

// GetColony returns one colony with events and lineage.
func (h *RegistryHandler) GetColony(c *gin.Context) {
	colony, err := h.svc.GetColony(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, colony)
}

// UpdateColony rewrites a colony.
func (h *RegistryHandler) UpdateColony(c *gin.Context) {
	var in registry.ColonyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	colony, err := h.svc.UpdateColony(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, colony)
}

// DeleteColony removes a colony and its events.
func (h *RegistryHandler) DeleteColony(c *gin.Context) {
	if err := h.svc.DeleteColony(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListEvents returns events newest first.
func (h *RegistryHandler) ListEvents(c *gin.Context) {
	filter := repository.EventFilter{
		ColonyID: c.Query("samhalleId"),
		Type:     c.Query("handelseTyp"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		filter.Limit = limit
	}
	events, err := h.svc.ListEvents(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateEvent stores an event; a split event may also create a colony.
func (h *RegistryHandler) CreateEvent(c *gin.Context) {
	var in registry.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	result, err := h.svc.CreateEvent(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetEvent returns one event.
func (h *RegistryHandler) GetEvent(c *gin.Context) {
	event, err := h.svc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent rewrites an event.
func (h *RegistryHandler) UpdateEvent(c *gin.Context) {
	var in registry.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	event, err := h.svc.UpdateEvent(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event.
func (h *RegistryHandler) DeleteEvent(c *gin.Context) {
	if err := h.svc.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
