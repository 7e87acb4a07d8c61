package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/response"
	"github.com/gravadigital/eventos-api/internal/services"
)

// RegistryHandler maneja inscripciones, calificaciones y presencias
type RegistryHandler struct {
	registryService *services.RegistryService
}

func NewRegistryHandler(registryService *services.RegistryService) *RegistryHandler {
	return &RegistryHandler{registryService: registryService}
}

// Register handles POST /api/activities/:id/registry
func (h *RegistryHandler) Register(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	activityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	registry, err := h.registryService.Register(c.Request.Context(), identity, activityID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Registered successfully", registry)
}

// Cancel handles DELETE /api/activities/:id/registry
func (h *RegistryHandler) Cancel(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	activityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.registryService.Cancel(c.Request.Context(), identity, activityID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListByActivity handles GET /api/activities/:id/registries
func (h *RegistryHandler) ListByActivity(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	activityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	registries, err := h.registryService.ListByActivity(c.Request.Context(), identity, activityID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, registries)
}

// Rate handles PATCH /api/registries/:id/rating
func (h *RegistryHandler) Rate(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	registryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.RatingRequest
	if !bindJSON(c, &req) {
		return
	}

	registry, err := h.registryService.Rate(c.Request.Context(), identity, registryID, req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, registry)
}

// MarkPresence handles PUT /api/schedules/:id/presences
func (h *RegistryHandler) MarkPresence(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	scheduleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.PresenceRequest
	if !bindJSON(c, &req) {
		return
	}

	registries, err := h.registryService.MarkPresence(c.Request.Context(), identity, scheduleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, registries)
}
