package model

// Ministry is a tenant: a ministry or a network of cell groups.
// A ministry may belong to a master ministry (a network).
type Ministry struct {
	MinistryID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"ministry_id"`
	Name             string  `gorm:"type:varchar(100);not null"                     json:"name"`
	MasterMinistryID *string `gorm:"type:uuid"                                      json:"master_ministry_id,omitempty"`
	BaseModel

	MasterMinistry *Ministry `gorm:"foreignKey:MasterMinistryID;references:MinistryID" json:"master_ministry,omitempty"`
}

func (Ministry) TableName() string { return "ministries" }
