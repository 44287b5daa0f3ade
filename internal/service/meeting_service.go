package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
	"cellhub/backend/internal/schedule"
)

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrMeetingExists   = errors.New("a meeting already exists at that time")
	ErrInvalidMeeting  = errors.New("invalid meeting data")
)

// MeetingService manages concrete meeting occurrences.
type MeetingService interface {
	// CreateAdHoc records a meeting outside the generation cycle, for
	// example a special gathering.
	CreateAdHoc(ctx context.Context, groupID string, req *dto.CreateMeetingRequest, caller Caller) (*dto.MeetingResponse, error)
	// GetDetail returns one meeting with its attendance list, its status
	// reconciled against the clock first.
	GetDetail(ctx context.Context, id string, caller Caller) (*dto.MeetingDetailResponse, error)
	ListByGroup(ctx context.Context, groupID string, from, to *string, caller Caller) ([]dto.MeetingResponse, error)
	// UpdateStatus is an explicit user edit. It accepts any lifecycle
	// status, including cancelled, which automatic resolution never sets
	// and never overrides.
	UpdateStatus(ctx context.Context, id, status string, caller Caller) (*dto.MeetingResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type meetingService struct {
	repo       *repository.Repository
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewMeetingService creates a MeetingService.
func NewMeetingService(repo *repository.Repository, reconciler *Reconciler, logger *zap.Logger) MeetingService {
	return &meetingService{repo: repo, reconciler: reconciler, logger: logger}
}

func (s *meetingService) CreateAdHoc(ctx context.Context, groupID string, req *dto.CreateMeetingRequest, caller Caller) (*dto.MeetingResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("loading group failed", zap.Error(err))
		return nil, err
	}
	if !canAccessGroup(caller, group) {
		return nil, ErrNotAllowed
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, ErrInvalidMeeting
	}
	if req.StartTime != nil {
		if _, _, ok := schedule.ParseClock(*req.StartTime); !ok {
			return nil, ErrInvalidMeeting
		}
	}
	if req.EndTime != nil {
		if _, _, ok := schedule.ParseClock(*req.EndTime); !ok {
			return nil, ErrInvalidMeeting
		}
	}

	meetingType := req.Type
	if meetingType == "" {
		meetingType = model.MeetingTypeSpecial
	}

	meeting := &model.Meeting{
		GroupID:   groupID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    schedule.StatusScheduled,
		Type:      meetingType,
	}
	if err := s.repo.Meeting.Create(ctx, meeting); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMeetingExists
		}
		s.logger.Error("creating meeting failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "create", "meeting", meeting.MeetingID, group.Name)
	return toMeetingResponse(meeting), nil
}

func (s *meetingService) GetDetail(ctx context.Context, id string, caller Caller) (*dto.MeetingDetailResponse, error) {
	meeting, err := s.loadAuthorized(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	single := []model.Meeting{*meeting}
	s.reconciler.Reconcile(ctx, single, time.Now())
	meeting = &single[0]

	attendances, err := s.repo.Attendance.ListByMeeting(ctx, id)
	if err != nil {
		s.logger.Error("listing attendances failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.MeetingDetailResponse{
		MeetingResponse: *toMeetingResponse(meeting),
		Attendances:     make([]dto.AttendanceResponse, 0, len(attendances)),
	}
	for i := range attendances {
		resp.Attendances = append(resp.Attendances, *toAttendanceResponse(&attendances[i]))
	}
	return resp, nil
}

func (s *meetingService) ListByGroup(ctx context.Context, groupID string, from, to *string, caller Caller) ([]dto.MeetingResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("loading group failed", zap.Error(err))
		return nil, err
	}
	if !canAccessGroup(caller, group) {
		return nil, ErrNotAllowed
	}

	var fromTime, toTime *time.Time
	if from != nil && *from != "" {
		t, err := time.ParseInLocation(dateFormat, *from, time.Local)
		if err != nil {
			return nil, ErrInvalidMeeting
		}
		fromTime = &t
	}
	if to != nil && *to != "" {
		t, err := time.ParseInLocation(dateFormat, *to, time.Local)
		if err != nil {
			return nil, ErrInvalidMeeting
		}
		end := t.AddDate(0, 0, 1).Add(-time.Second)
		toTime = &end
	}

	meetings, err := s.repo.Meeting.ListByGroup(ctx, groupID, fromTime, toTime)
	if err != nil {
		s.logger.Error("listing meetings failed", zap.Error(err))
		return nil, err
	}

	s.reconciler.Reconcile(ctx, meetings, time.Now())

	result := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		result = append(result, *toMeetingResponse(&meetings[i]))
	}
	return result, nil
}

func (s *meetingService) UpdateStatus(ctx context.Context, id, status string, caller Caller) (*dto.MeetingResponse, error) {
	meeting, err := s.loadAuthorized(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	switch status {
	case schedule.StatusScheduled, schedule.StatusInProgress, schedule.StatusFinished, schedule.StatusCancelled:
	default:
		return nil, ErrInvalidMeeting
	}

	if err := s.repo.Meeting.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("updating meeting status failed", zap.Error(err))
		return nil, err
	}
	meeting.Status = status

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "update_status", "meeting", id, status)
	return toMeetingResponse(meeting), nil
}

func (s *meetingService) Delete(ctx context.Context, id string, caller Caller) error {
	if _, err := s.loadAuthorized(ctx, id, caller); err != nil {
		return err
	}

	if err := s.repo.Meeting.Delete(ctx, id); err != nil {
		s.logger.Error("deleting meeting failed", zap.Error(err))
		return err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "delete", "meeting", id, "")
	return nil
}

func (s *meetingService) loadAuthorized(ctx context.Context, id string, caller Caller) (*model.Meeting, error) {
	meeting, err := s.repo.Meeting.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("loading meeting failed", zap.Error(err))
		return nil, err
	}
	if meeting.Group == nil || !canAccessGroup(caller, meeting.Group) {
		return nil, ErrNotAllowed
	}
	return meeting, nil
}

func toMeetingResponse(m *model.Meeting) *dto.MeetingResponse {
	return &dto.MeetingResponse{
		ID:        m.MeetingID,
		GroupID:   m.GroupID,
		Date:      m.Date.Format(timeFormat),
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Status:    m.Status,
		Type:      m.Type,
		CreatedAt: m.CreatedAt.Format(timeFormat),
	}
}
