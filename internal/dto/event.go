package dto

// CreateEventRequest creates a ministry event.
type CreateEventRequest struct {
	MinistryID  string  `json:"ministry_id" binding:"required,uuid"`
	Title       string  `json:"title" binding:"required,max=150"`
	Description string  `json:"description" binding:"omitempty,max=1000"`
	StartsAt    string  `json:"starts_at" binding:"required"` // RFC 3339
	EndsAt      *string `json:"ends_at"`
	Location    string  `json:"location" binding:"omitempty,max=255"`
}

// UpdateEventRequest updates an event; nil fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=150"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	StartsAt    *string `json:"starts_at"`
	EndsAt      *string `json:"ends_at"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
}

// EventResponse is the public view of an event.
type EventResponse struct {
	ID          string  `json:"id"`
	MinistryID  string  `json:"ministry_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      *string `json:"ends_at,omitempty"`
	Location    string  `json:"location,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
