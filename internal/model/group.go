package model

import (
	"time"

	"cellhub/backend/internal/schedule"
)

// Group is a cell group owned by a ministry. The four meeting_* columns are
// the group's recurrence configuration; a group is eligible for automatic
// meeting generation only when all four are set.
type Group struct {
	GroupID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	MinistryID       string     `gorm:"type:uuid;not null"                             json:"ministry_id"`
	Name             string     `gorm:"type:varchar(100);not null"                     json:"name"`
	LeaderID         *string    `gorm:"type:uuid"                                      json:"leader_id,omitempty"`
	Address          *string    `gorm:"type:varchar(255)"                              json:"address,omitempty"`
	MeetingFrequency *string    `gorm:"type:varchar(20)"                               json:"meeting_frequency,omitempty"` // daily | weekly | biweekly | monthly
	MeetingDay       *string    `gorm:"type:varchar(20)"                               json:"meeting_day,omitempty"`       // sunday … saturday
	MeetingTime      *string    `gorm:"type:varchar(5)"                                json:"meeting_time,omitempty"`      // "HH:MM"
	MeetingStartDate *time.Time `json:"meeting_start_date,omitempty"`
	BaseModel

	Ministry *Ministry `gorm:"foreignKey:MinistryID;references:MinistryID" json:"ministry,omitempty"`
	Leader   *User     `gorm:"foreignKey:LeaderID;references:UserID"       json:"leader,omitempty"`
}

func (Group) TableName() string { return "groups" }

// ScheduleRule returns the group's recurrence rule, or false when the
// configuration is incomplete.
func (g *Group) ScheduleRule() (schedule.Rule, bool) {
	if g.MeetingFrequency == nil || g.MeetingDay == nil || g.MeetingTime == nil || g.MeetingStartDate == nil {
		return schedule.Rule{}, false
	}
	return schedule.Rule{
		Frequency:  *g.MeetingFrequency,
		DayOfWeek:  *g.MeetingDay,
		TimeOfDay:  *g.MeetingTime,
		AnchorDate: *g.MeetingStartDate,
	}, true
}
