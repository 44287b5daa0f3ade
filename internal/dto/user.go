package dto

// CreateUserRequest creates an account (admin only).
type CreateUserRequest struct {
	Name             string  `json:"name" binding:"required,max=100"`
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=8"`
	Role             string  `json:"role" binding:"required,oneof=admin master leader"`
	MinistryID       *string `json:"ministry_id"`
	MasterMinistryID *string `json:"master_ministry_id"`
}

// UpdateUserRequest updates profile fields; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Email      *string `json:"email" binding:"omitempty,email"`
	MinistryID *string `json:"ministry_id"`
	Active     *bool   `json:"active"`
}

// AssignRoleRequest changes a user's role.
type AssignRoleRequest struct {
	Role             string  `json:"role" binding:"required,oneof=admin master leader"`
	MasterMinistryID *string `json:"master_ministry_id"`
}

// ListUsersRequest filters the user listing.
type ListUsersRequest struct {
	PageRequest
	MinistryID string `form:"ministry_id"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	MinistryID       *string `json:"ministry_id,omitempty"`
	MinistryName     string  `json:"ministry_name,omitempty"`
	MasterMinistryID *string `json:"master_ministry_id,omitempty"`
	Active           bool    `json:"active"`
	CreatedAt        string  `json:"created_at"`
}
