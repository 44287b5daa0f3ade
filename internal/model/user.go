package model

// User roles.
const (
	RoleAdmin  = "admin"
	RoleMaster = "master"
	RoleLeader = "leader"
)

// User is an account in the system: an administrator, a master ministry
// supervisor, or a cell group leader.
type User struct {
	UserID           string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name             string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email            string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash     string  `gorm:"type:varchar(100);not null"                     json:"-"`
	Role             string  `gorm:"type:varchar(20);not null;default:'leader'"     json:"role"` // admin | master | leader
	MinistryID       *string `gorm:"type:uuid"                                      json:"ministry_id,omitempty"`
	MasterMinistryID *string `gorm:"type:uuid"                                      json:"master_ministry_id,omitempty"`
	Active           bool    `gorm:"not null;default:true"                          json:"active"`
	BaseModel

	Ministry *Ministry `gorm:"foreignKey:MinistryID;references:MinistryID" json:"ministry,omitempty"`
}

func (User) TableName() string { return "users" }
