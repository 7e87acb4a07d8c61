package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/domain/event"
	"github.com/gravadigital/eventos-api/internal/response"
	"github.com/gravadigital/eventos-api/internal/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventView is an event plus its rendered display name
type EventView struct {
	*event.Event
	Name string `json:"name"`
}

func newEventView(e *event.Event) EventView {
	return EventView{Event: e, Name: e.DisplayName()}
}

// GetAllEvents handles GET /api/events
func (h *EventHandler) GetAllEvents(c *gin.Context) {
	events, err := h.eventService.GetAllEvents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, newEventView(e))
	}
	response.OK(c, views)
}

// GetEvent handles GET /api/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	e, err := h.eventService.GetEventByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, newEventView(e))
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}

	var req services.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.eventService.CreateEvent(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Event created successfully", newEventView(e))
}

// UpdateEvent handles PUT /api/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.eventService.UpdateEvent(c.Request.Context(), identity, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Event updated successfully", newEventView(e))
}

// DeleteEvent handles DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
