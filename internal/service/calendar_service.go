package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cellhub/backend/internal/repository"
	"cellhub/backend/internal/schedule"
)

// CalendarService renders a group's meetings as an iCalendar (RFC 5545)
// feed, consumable by any calendar client.
type CalendarService interface {
	GroupFeed(ctx context.Context, groupID string, caller Caller) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) GroupFeed(ctx context.Context, groupID string, caller Caller) (string, error) {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrGroupNotFound
		}
		s.logger.Error("loading group failed", zap.Error(err))
		return "", err
	}
	if !canAccessGroup(caller, group) {
		return "", ErrNotAllowed
	}

	meetings, err := s.repo.Meeting.ListByGroup(ctx, groupID, nil, nil)
	if err != nil {
		s.logger.Error("listing meetings failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cellhub//meetings//EN")
	cal.SetXWRCalName(group.Name)

	for i := range meetings {
		m := &meetings[i]
		// Cancelled meetings stay out of the feed.
		if m.Status == schedule.StatusCancelled {
			continue
		}

		start := m.Date
		if m.StartTime != nil {
			if h, min, ok := schedule.ParseClock(*m.StartTime); ok {
				start = time.Date(start.Year(), start.Month(), start.Day(), h, min, 0, 0, start.Location())
			}
		}
		end := start.Add(schedule.DefaultMeetingDuration)
		if m.EndTime != nil {
			if h, min, ok := schedule.ParseClock(*m.EndTime); ok {
				end = time.Date(start.Year(), start.Month(), start.Day(), h, min, 0, 0, start.Location())
			}
		}

		event := cal.AddEvent(fmt.Sprintf("%s@cellhub", m.MeetingID))
		event.SetCreatedTime(m.CreatedAt)
		event.SetDtStampTime(m.CreatedAt)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s meeting", group.Name))
		if group.Address != nil {
			event.SetLocation(*group.Address)
		}
		event.SetDescription(fmt.Sprintf("Type: %s, status: %s", m.Type, m.Status))
	}

	return cal.Serialize(), nil
}
