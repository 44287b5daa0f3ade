package dto

// CreateMinistryRequest creates a ministry.
type CreateMinistryRequest struct {
	Name             string  `json:"name" binding:"required,max=100"`
	MasterMinistryID *string `json:"master_ministry_id"`
}

// UpdateMinistryRequest updates a ministry; nil fields are left unchanged.
type UpdateMinistryRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=100"`
	MasterMinistryID *string `json:"master_ministry_id"`
}

// MinistryResponse is the public view of a ministry.
type MinistryResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	MasterMinistryID *string `json:"master_ministry_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
}
