package model

import "time"

// Meeting types.
const (
	MeetingTypeRegular = "regular"
	MeetingTypeSpecial = "special"
)

// Meeting is one concrete occurrence of a group's gathering, either created
// by the generation job or ad hoc by a user. Its date carries the full
// timestamp of the occurrence; start_time/end_time are "HH:MM" wall-clock
// values on that date.
type Meeting struct {
	MeetingID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"            json:"meeting_id"`
	GroupID   string    `gorm:"type:uuid;not null;uniqueIndex:meetings_group_date_unique" json:"group_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:meetings_group_date_unique"           json:"date"`
	StartTime *string   `gorm:"type:varchar(5)"                                           json:"start_time,omitempty"`
	EndTime   *string   `gorm:"type:varchar(5)"                                           json:"end_time,omitempty"`
	Status    string    `gorm:"type:varchar(20);not null;default:'scheduled'"             json:"status"` // scheduled | in_progress | finished | cancelled
	Type      string    `gorm:"type:varchar(30);not null;default:'regular'"               json:"type"`
	BaseModel

	Group       *Group       `gorm:"foreignKey:GroupID;references:GroupID" json:"group,omitempty"`
	Attendances []Attendance `gorm:"foreignKey:MeetingID"                  json:"attendances,omitempty"`
}

func (Meeting) TableName() string { return "meetings" }
