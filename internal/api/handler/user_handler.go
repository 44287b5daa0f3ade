package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/service"
	"cellhub/backend/pkg/response"
)

// UserHandler serves account management endpoints.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// CreateUser creates an account.
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, 12002, "email already registered")
		case errors.Is(err, service.ErrMasterRequired):
			response.BadRequest(c, 12003, "master role requires a master ministry")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// GetUser returns one account.
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "user not found")
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// ListUsers lists accounts, optionally filtered by ministry.
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req, caller)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// UpdateUser updates an account. Admin or the account owner.
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "user not found")
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		case errors.Is(err, service.ErrEmailTaken):
			response.Conflict(c, 12002, "email already registered")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// AssignRole changes an account's role.
// PUT /api/v1/users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	user, err := h.userSvc.AssignRole(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "user not found")
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		case errors.Is(err, service.ErrMasterRequired):
			response.BadRequest(c, 12003, "master role requires a master ministry")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// DeleteUser removes an account.
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "user not found")
		case errors.Is(err, service.ErrNotAllowed):
			response.Forbidden(c, 10003, "not allowed")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
