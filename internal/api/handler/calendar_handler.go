package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// CalendarHandler serves iCalendar feeds.
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// GroupCalendar serves a group's meetings as an ICS feed.
// GET /api/v1/groups/:id/calendar.ics
func (h *CalendarHandler) GroupCalendar(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	feed, err := h.calendarSvc.GroupFeed(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, 14001, "group not found")
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="meetings.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
