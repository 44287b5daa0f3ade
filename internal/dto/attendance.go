package dto

// AttendanceItem is one member's presence in a bulk upsert.
type AttendanceItem struct {
	MemberID   *string `json:"member_id" binding:"omitempty,uuid"`
	MemberName string  `json:"member_name" binding:"required,max=100"`
	Present    bool    `json:"present"`
}

// SetAttendancesRequest replaces a meeting's attendance list.
type SetAttendancesRequest struct {
	Attendances []AttendanceItem `json:"attendances" binding:"required,dive"`
}

// AttendanceResponse is the public view of an attendance row.
type AttendanceResponse struct {
	ID         string  `json:"id"`
	MeetingID  string  `json:"meeting_id"`
	MemberID   *string `json:"member_id,omitempty"`
	MemberName string  `json:"member_name"`
	Present    bool    `json:"present"`
}
