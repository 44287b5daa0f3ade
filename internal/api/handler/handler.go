package handler

import "cellhub/backend/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Ministry   *MinistryHandler
	Group      *GroupHandler
	Meeting    *MeetingHandler
	Ledger     *LedgerHandler
	Event      *EventHandler
	Activity   *ActivityHandler
	Export     *ExportHandler
	Calendar   *CalendarHandler
	Generation *GenerationHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Ministry:   NewMinistryHandler(svc.Ministry),
		Group:      NewGroupHandler(svc.Group),
		Meeting:    NewMeetingHandler(svc.Meeting, svc.Attendance),
		Ledger:     NewLedgerHandler(svc.Ledger),
		Event:      NewEventHandler(svc.Event),
		Activity:   NewActivityHandler(svc.Activity),
		Export:     NewExportHandler(svc.Export),
		Calendar:   NewCalendarHandler(svc.Calendar),
		Generation: NewGenerationHandler(svc.Generation),
	}
}
