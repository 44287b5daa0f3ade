package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// GroupHandler serves cell group endpoints.
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

func writeGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 14001, "group not found")
	case errors.Is(err, service.ErrMinistryNotFound):
		response.NotFound(c, 13001, "ministry not found")
	case errors.Is(err, service.ErrNotAllowed):
		response.Forbidden(c, 10003, "not allowed")
	case errors.Is(err, service.ErrInvalidSchedule):
		response.BadRequest(c, 14002, "invalid schedule configuration")
	default:
		response.InternalError(c)
	}
}

// CreateGroup creates a cell group.
// POST /api/v1/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	group, err := h.groupSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		writeGroupError(c, err)
		return
	}

	response.Created(c, group)
}

// GetGroup returns a group with its meetings, statuses freshly reconciled.
// GET /api/v1/groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	detail, err := h.groupSvc.GetDetail(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		writeGroupError(c, err)
		return
	}

	response.OK(c, detail)
}

// ListGroups lists the groups visible to the caller.
// GET /api/v1/groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	groups, err := h.groupSvc.List(c.Request.Context(), caller)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, groups)
}

// ListMinistryGroups lists the groups of one ministry.
// GET /api/v1/ministries/:id/groups
func (h *GroupHandler) ListMinistryGroups(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	groups, err := h.groupSvc.ListByMinistry(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		writeGroupError(c, err)
		return
	}

	response.OK(c, groups)
}

// UpdateGroup updates a group's profile fields.
// PUT /api/v1/groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	group, err := h.groupSvc.Update(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		writeGroupError(c, err)
		return
	}

	response.OK(c, group)
}

// SetSchedule configures a group's recurrence rule.
// PUT /api/v1/groups/:id/schedule
func (h *GroupHandler) SetSchedule(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	group, err := h.groupSvc.SetSchedule(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		writeGroupError(c, err)
		return
	}

	response.OK(c, group)
}

// DeleteGroup removes a group and its meetings.
// DELETE /api/v1/groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.groupSvc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		writeGroupError(c, err)
		return
	}

	response.OK(c, nil)
}
