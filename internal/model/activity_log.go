package model

import "time"

// ActivityLog is one line in the audit trail, written by mutating services.
type ActivityLog struct {
	LogID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	ActorID   *string   `gorm:"type:uuid"                                      json:"actor_id,omitempty"`
	Action    string    `gorm:"type:varchar(50);not null"                      json:"action"`
	Entity    string    `gorm:"type:varchar(50);not null"                      json:"entity"`
	EntityID  *string   `gorm:"type:uuid"                                      json:"entity_id,omitempty"`
	Detail    string    `gorm:"type:varchar(500)"                              json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
