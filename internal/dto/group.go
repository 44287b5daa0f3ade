package dto

// CreateGroupRequest creates a cell group.
type CreateGroupRequest struct {
	MinistryID string  `json:"ministry_id" binding:"required,uuid"`
	Name       string  `json:"name" binding:"required,max=100"`
	LeaderID   *string `json:"leader_id" binding:"omitempty,uuid"`
	Address    *string `json:"address" binding:"omitempty,max=255"`
}

// UpdateGroupRequest updates group fields; nil fields are left unchanged.
type UpdateGroupRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	LeaderID *string `json:"leader_id" binding:"omitempty,uuid"`
	Address  *string `json:"address" binding:"omitempty,max=255"`
}

// SetScheduleRequest configures a group's recurrence rule. All four fields
// are required together; a partially configured rule never generates
// meetings.
type SetScheduleRequest struct {
	Frequency string `json:"frequency" binding:"required,oneof=daily weekly biweekly monthly"`
	DayOfWeek string `json:"day_of_week" binding:"required"`
	TimeOfDay string `json:"time_of_day" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // "2006-01-02"
}

// GroupResponse is the public view of a group.
type GroupResponse struct {
	ID               string  `json:"id"`
	MinistryID       string  `json:"ministry_id"`
	MinistryName     string  `json:"ministry_name,omitempty"`
	Name             string  `json:"name"`
	LeaderID         *string `json:"leader_id,omitempty"`
	LeaderName       string  `json:"leader_name,omitempty"`
	Address          *string `json:"address,omitempty"`
	MeetingFrequency *string `json:"meeting_frequency,omitempty"`
	MeetingDay       *string `json:"meeting_day,omitempty"`
	MeetingTime      *string `json:"meeting_time,omitempty"`
	MeetingStartDate *string `json:"meeting_start_date,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// GroupDetailResponse is a group with its reconciled meetings.
type GroupDetailResponse struct {
	GroupResponse
	Meetings []MeetingResponse `json:"meetings"`
}
