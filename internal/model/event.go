package model

import "time"

// Event is a ministry-level calendar item (conference, retreat, service).
type Event struct {
	EventID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	MinistryID  string     `gorm:"type:uuid;not null"                             json:"ministry_id"`
	Title       string     `gorm:"type:varchar(150);not null"                     json:"title"`
	Description string     `gorm:"type:varchar(1000)"                             json:"description,omitempty"`
	StartsAt    time.Time  `gorm:"not null"                                       json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Location    string     `gorm:"type:varchar(255)"                              json:"location,omitempty"`
	BaseModel

	Ministry *Ministry `gorm:"foreignKey:MinistryID;references:MinistryID" json:"ministry,omitempty"`
}

func (Event) TableName() string { return "events" }
