package dto

// ListActivityRequest filters the audit trail listing.
type ListActivityRequest struct {
	PageRequest
	Entity string `form:"entity"`
}

// ActivityLogResponse is one audit trail line.
type ActivityLogResponse struct {
	ID        string  `json:"id"`
	ActorID   *string `json:"actor_id,omitempty"`
	Action    string  `json:"action"`
	Entity    string  `json:"entity"`
	EntityID  *string `json:"entity_id,omitempty"`
	Detail    string  `json:"detail,omitempty"`
	CreatedAt string  `json:"created_at"`
}
