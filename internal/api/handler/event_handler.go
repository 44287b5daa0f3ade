package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// EventHandler serves ministry event endpoints.
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

func writeEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 18001, "event not found")
	case errors.Is(err, service.ErrMinistryNotFound):
		response.NotFound(c, 13001, "ministry not found")
	case errors.Is(err, service.ErrNotAllowed):
		response.Forbidden(c, 10003, "not allowed")
	case errors.Is(err, service.ErrInvalidEvent):
		response.BadRequest(c, 18002, "invalid event data")
	default:
		response.InternalError(c)
	}
}

// CreateEvent creates a ministry event.
// POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		writeEventError(c, err)
		return
	}

	response.Created(c, event)
}

// ListEvents lists the events visible to the caller.
// GET /api/v1/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.List(c.Request.Context(), caller)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, events)
}

// UpdateEvent updates an event.
// PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		writeEventError(c, err)
		return
	}

	response.OK(c, event)
}

// DeleteEvent removes an event.
// DELETE /api/v1/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		writeEventError(c, err)
		return
	}

	response.OK(c, nil)
}
