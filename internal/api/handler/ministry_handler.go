package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// MinistryHandler serves ministry management endpoints.
type MinistryHandler struct {
	ministrySvc service.MinistryService
}

// NewMinistryHandler creates a MinistryHandler.
func NewMinistryHandler(ministrySvc service.MinistryService) *MinistryHandler {
	return &MinistryHandler{ministrySvc: ministrySvc}
}

// CreateMinistry creates a ministry.
// POST /api/v1/ministries
func (h *MinistryHandler) CreateMinistry(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateMinistryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	ministry, err := h.ministrySvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		if errors.Is(err, service.ErrNotAllowed) {
			response.Forbidden(c, 10003, "not allowed")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, ministry)
}

// GetMinistry returns one ministry.
// GET /api/v1/ministries/:id
func (h *MinistryHandler) GetMinistry(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	ministry, err := h.ministrySvc.GetByID(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMinistryNotFound):
			response.NotFound(c, 13001, "ministry not found")
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, ministry)
}

// ListMinistries lists the ministries visible to the caller.
// GET /api/v1/ministries
func (h *MinistryHandler) ListMinistries(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	ministries, err := h.ministrySvc.List(c.Request.Context(), caller)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, ministries)
}

// UpdateMinistry updates a ministry.
// PUT /api/v1/ministries/:id
func (h *MinistryHandler) UpdateMinistry(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateMinistryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	ministry, err := h.ministrySvc.Update(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMinistryNotFound):
			response.NotFound(c, 13001, "ministry not found")
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, ministry)
}

// DeleteMinistry removes a ministry.
// DELETE /api/v1/ministries/:id
func (h *MinistryHandler) DeleteMinistry(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.ministrySvc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		switch {
		case errors.Is(err, service.ErrMinistryNotFound):
			response.NotFound(c, 13001, "ministry not found")
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
