package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// MeetingHandler serves meeting and attendance endpoints.
type MeetingHandler struct {
	meetingSvc    service.MeetingService
	attendanceSvc service.AttendanceService
}

// NewMeetingHandler creates a MeetingHandler.
func NewMeetingHandler(meetingSvc service.MeetingService, attendanceSvc service.AttendanceService) *MeetingHandler {
	return &MeetingHandler{meetingSvc: meetingSvc, attendanceSvc: attendanceSvc}
}

func writeMeetingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMeetingNotFound):
		response.NotFound(c, 15001, "meeting not found")
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 14001, "group not found")
	case errors.Is(err, service.ErrNotAllowed):
		response.Forbidden(c, 10003, "not allowed")
	case errors.Is(err, service.ErrMeetingExists):
		response.Conflict(c, 15002, "a meeting already exists at that time")
	case errors.Is(err, service.ErrInvalidMeeting):
		response.BadRequest(c, 15003, "invalid meeting data")
	default:
		response.InternalError(c)
	}
}

// CreateMeeting records an ad hoc meeting for a group.
// POST /api/v1/groups/:id/meetings
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	meeting, err := h.meetingSvc.CreateAdHoc(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	response.Created(c, meeting)
}

// ListMeetings lists a group's meetings, optionally bounded by ?from/?to
// ("2006-01-02"). Statuses are reconciled before the list is returned.
// GET /api/v1/groups/:id/meetings
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	meetings, err := h.meetingSvc.ListByGroup(c.Request.Context(), c.Param("id"), &from, &to, caller)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	response.OK(c, meetings)
}

// GetMeeting returns one meeting with its attendance list.
// GET /api/v1/meetings/:id
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	detail, err := h.meetingSvc.GetDetail(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	response.OK(c, detail)
}

// UpdateStatus is the explicit user status edit, including cancellation.
// PUT /api/v1/meetings/:id/status
func (h *MeetingHandler) UpdateStatus(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateMeetingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	meeting, err := h.meetingSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, caller)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	response.OK(c, meeting)
}

// DeleteMeeting removes a meeting.
// DELETE /api/v1/meetings/:id
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.meetingSvc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		writeMeetingError(c, err)
		return
	}

	response.OK(c, nil)
}

// SetAttendances replaces a meeting's attendance list.
// PUT /api/v1/meetings/:id/attendances
func (h *MeetingHandler) SetAttendances(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.SetAttendancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	attendances, err := h.attendanceSvc.SetForMeeting(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	response.OK(c, attendances)
}

// ListAttendances returns a meeting's attendance list.
// GET /api/v1/meetings/:id/attendances
func (h *MeetingHandler) ListAttendances(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	attendances, err := h.attendanceSvc.ListForMeeting(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		writeMeetingError(c, err)
		return
	}

	response.OK(c, attendances)
}
