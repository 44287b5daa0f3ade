package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface. Services receive this
// struct so tests can swap individual repositories for in-memory fakes.
type Repository struct {
	User       UserRepository
	Ministry   MinistryRepository
	Group      GroupRepository
	Meeting    MeetingRepository
	Attendance AttendanceRepository
	Ledger     LedgerRepository
	Event      EventRepository
	Activity   ActivityLogRepository
}

// NewRepository builds the aggregate from a database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Ministry:   NewMinistryRepo(db),
		Group:      NewGroupRepo(db),
		Meeting:    NewMeetingRepo(db),
		Attendance: NewAttendanceRepo(db),
		Ledger:     NewLedgerRepo(db),
		Event:      NewEventRepo(db),
		Activity:   NewActivityLogRepo(db),
	}
}
