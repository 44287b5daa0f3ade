package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// ActivityHandler serves the audit trail.
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler creates an ActivityHandler.
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// ListActivity lists audit trail entries. Admin only.
// GET /api/v1/activity
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ListActivityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	entries, total, err := h.activitySvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		if errors.Is(err, service.ErrNotAllowed) {
			response.Forbidden(c, 10003, "not allowed")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKPage(c, entries, total, req.GetPage(), req.GetPageSize())
}
