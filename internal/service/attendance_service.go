package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
)

// AttendanceService manages per-meeting attendance lists.
type AttendanceService interface {
	// SetForMeeting replaces the meeting's attendance list. Attendance feeds
	// status resolution: an in-window meeting is in_progress only once a
	// present member is recorded.
	SetForMeeting(ctx context.Context, meetingID string, req *dto.SetAttendancesRequest, caller Caller) ([]dto.AttendanceResponse, error)
	ListForMeeting(ctx context.Context, meetingID string, caller Caller) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

func (s *attendanceService) SetForMeeting(ctx context.Context, meetingID string, req *dto.SetAttendancesRequest, caller Caller) ([]dto.AttendanceResponse, error) {
	if _, err := s.loadMeeting(ctx, meetingID, caller); err != nil {
		return nil, err
	}

	attendances := make([]model.Attendance, 0, len(req.Attendances))
	for _, item := range req.Attendances {
		attendances = append(attendances, model.Attendance{
			MeetingID:  meetingID,
			MemberID:   item.MemberID,
			MemberName: item.MemberName,
			Present:    item.Present,
		})
	}

	if err := s.repo.Attendance.ReplaceForMeeting(ctx, meetingID, attendances); err != nil {
		s.logger.Error("replacing attendances failed",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "set_attendances", "meeting", meetingID, "")

	result := make([]dto.AttendanceResponse, 0, len(attendances))
	for i := range attendances {
		result = append(result, *toAttendanceResponse(&attendances[i]))
	}
	return result, nil
}

func (s *attendanceService) ListForMeeting(ctx context.Context, meetingID string, caller Caller) ([]dto.AttendanceResponse, error) {
	if _, err := s.loadMeeting(ctx, meetingID, caller); err != nil {
		return nil, err
	}

	attendances, err := s.repo.Attendance.ListByMeeting(ctx, meetingID)
	if err != nil {
		s.logger.Error("listing attendances failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceResponse, 0, len(attendances))
	for i := range attendances {
		result = append(result, *toAttendanceResponse(&attendances[i]))
	}
	return result, nil
}

func (s *attendanceService) loadMeeting(ctx context.Context, meetingID string, caller Caller) (*model.Meeting, error) {
	meeting, err := s.repo.Meeting.GetByID(ctx, meetingID)
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

func toAttendanceResponse(a *model.Attendance) *dto.AttendanceResponse {
	return &dto.AttendanceResponse{
		ID:         a.AttendanceID,
		MeetingID:  a.MeetingID,
		MemberID:   a.MemberID,
		MemberName: a.MemberName,
		Present:    a.Present,
	}
}
