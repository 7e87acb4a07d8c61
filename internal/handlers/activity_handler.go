package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/domain/activity"
	"github.com/gravadigital/eventos-api/internal/response"
	"github.com/gravadigital/eventos-api/internal/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ActivityView adds the derived fields clients display next to an activity
type ActivityView struct {
	*activity.Activity
	EventName         string `json:"event_name,omitempty"`
	WorkloadInMinutes int    `json:"workload_in_minutes"`
	Online            bool   `json:"online"`
}

func newActivityView(a *activity.Activity) ActivityView {
	view := ActivityView{
		Activity:          a,
		WorkloadInMinutes: a.WorkloadInMinutes(),
		Online:            a.IsOnline(),
	}
	if a.Event != nil {
		view.EventName = a.Event.DisplayName()
	}
	return view
}

// ListByEvent handles GET /api/events/:id/activities
func (h *ActivityHandler) ListByEvent(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	activities, err := h.activityService.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, newActivityView(a))
	}
	response.OK(c, views)
}

// CreateActivity handles POST /api/events/:id/activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.activityService.CreateActivity(c.Request.Context(), identity, eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Activity created successfully", newActivityView(a))
}

// GetActivity handles GET /api/activities/:id
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	a, err := h.activityService.GetActivity(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, newActivityView(a))
}

// UpdateActivity handles PUT /api/activities/:id
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ActivityRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.activityService.UpdateActivity(c.Request.Context(), identity, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessResponse(c, http.StatusOK, "Activity updated successfully", newActivityView(a))
}

// DeleteActivity handles DELETE /api/activities/:id
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.activityService.DeleteActivity(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
