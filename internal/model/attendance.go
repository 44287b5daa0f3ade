package model

// Attendance records one member's presence at one meeting. MemberID is
// optional: visitors are tracked by name only.
type Attendance struct {
	AttendanceID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	MeetingID    string  `gorm:"type:uuid;not null;index"                       json:"meeting_id"`
	MemberID     *string `gorm:"type:uuid"                                      json:"member_id,omitempty"`
	MemberName   string  `gorm:"type:varchar(100);not null"                     json:"member_name"`
	Present      bool    `gorm:"not null;default:false"                         json:"present"`
	BaseModel
}

func (Attendance) TableName() string { return "attendances" }
