package dto

// CreateMeetingRequest creates one ad hoc meeting.
type CreateMeetingRequest struct {
	Date      string  `json:"date" binding:"required"` // RFC 3339
	StartTime *string `json:"start_time"`              // "HH:MM"
	EndTime   *string `json:"end_time"`                // "HH:MM"
	Type      string  `json:"type" binding:"omitempty,max=30"`
}

// UpdateMeetingStatusRequest is an explicit user status edit, the only way
// a meeting enters or leaves the cancelled state.
type UpdateMeetingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled in_progress finished cancelled"`
}

// MeetingResponse is the public view of a meeting.
type MeetingResponse struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"group_id"`
	Date      string  `json:"date"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Status    string  `json:"status"`
	Type      string  `json:"type"`
	CreatedAt string  `json:"created_at"`
}

// MeetingDetailResponse is a meeting with its attendance list.
type MeetingDetailResponse struct {
	MeetingResponse
	Attendances []AttendanceResponse `json:"attendances"`
}
