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
	ErrGroupNotFound   = errors.New("group not found")
	ErrInvalidSchedule = errors.New("invalid schedule configuration")
)

// GroupService manages cell groups and their schedule configuration.
type GroupService interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest, caller Caller) (*dto.GroupResponse, error)
	// GetDetail returns the group with its meetings, statuses reconciled
	// against the clock before the read returns (reconcile-and-fetch).
	GetDetail(ctx context.Context, id string, caller Caller) (*dto.GroupDetailResponse, error)
	List(ctx context.Context, caller Caller) ([]dto.GroupResponse, error)
	ListByMinistry(ctx context.Context, ministryID string, caller Caller) ([]dto.GroupResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateGroupRequest, caller Caller) (*dto.GroupResponse, error)
	SetSchedule(ctx context.Context, id string, req *dto.SetScheduleRequest, caller Caller) (*dto.GroupResponse, error)
	// Delete removes the group and, by cascade, its meetings and their
	// attendance records.
	Delete(ctx context.Context, id string, caller Caller) error
}

type groupService struct {
	repo       *repository.Repository
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewGroupService creates a GroupService.
func NewGroupService(repo *repository.Repository, reconciler *Reconciler, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, reconciler: reconciler, logger: logger}
}

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest, caller Caller) (*dto.GroupResponse, error) {
	ministry, err := s.repo.Ministry.GetByID(ctx, req.MinistryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMinistryNotFound
		}
		s.logger.Error("loading ministry failed", zap.Error(err))
		return nil, err
	}
	if !canAccessMinistry(caller, ministry) {
		return nil, ErrNotAllowed
	}

	group := &model.Group{
		MinistryID: req.MinistryID,
		Name:       req.Name,
		LeaderID:   req.LeaderID,
		Address:    req.Address,
	}
	if err := s.repo.Group.Create(ctx, group); err != nil {
		s.logger.Error("creating group failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "create", "group", group.GroupID, group.Name)
	return toGroupResponse(group), nil
}

func (s *groupService) GetDetail(ctx context.Context, id string, caller Caller) (*dto.GroupDetailResponse, error) {
	group, err := s.loadAuthorized(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	meetings, err := s.repo.Meeting.ListByGroup(ctx, id, nil, nil)
	if err != nil {
		s.logger.Error("listing meetings failed", zap.Error(err))
		return nil, err
	}

	// Correct stale statuses before rendering. Best effort: on failure the
	// stored statuses are returned.
	s.reconciler.Reconcile(ctx, meetings, time.Now())

	resp := &dto.GroupDetailResponse{
		GroupResponse: *toGroupResponse(group),
		Meetings:      make([]dto.MeetingResponse, 0, len(meetings)),
	}
	for i := range meetings {
		resp.Meetings = append(resp.Meetings, *toMeetingResponse(&meetings[i]))
	}
	return resp, nil
}

func (s *groupService) List(ctx context.Context, caller Caller) ([]dto.GroupResponse, error) {
	ministryIDs, err := accessibleMinistryIDs(ctx, s.repo, caller)
	if err != nil {
		s.logger.Error("resolving accessible ministries failed", zap.Error(err))
		return nil, err
	}
	if ministryIDs != nil && len(ministryIDs) == 0 {
		return []dto.GroupResponse{}, nil
	}

	groups, err := s.repo.Group.List(ctx, ministryIDs)
	if err != nil {
		s.logger.Error("listing groups failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *toGroupResponse(&groups[i]))
	}
	return result, nil
}

func (s *groupService) ListByMinistry(ctx context.Context, ministryID string, caller Caller) ([]dto.GroupResponse, error) {
	ministry, err := s.repo.Ministry.GetByID(ctx, ministryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMinistryNotFound
		}
		s.logger.Error("loading ministry failed", zap.Error(err))
		return nil, err
	}
	if !canAccessMinistry(caller, ministry) {
		return nil, ErrNotAllowed
	}

	groups, err := s.repo.Group.List(ctx, []string{ministryID})
	if err != nil {
		s.logger.Error("listing groups failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, *toGroupResponse(&groups[i]))
	}
	return result, nil
}

func (s *groupService) Update(ctx context.Context, id string, req *dto.UpdateGroupRequest, caller Caller) (*dto.GroupResponse, error) {
	group, err := s.loadAuthorized(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.LeaderID != nil {
		group.LeaderID = req.LeaderID
	}
	if req.Address != nil {
		group.Address = req.Address
	}

	if err := s.repo.Group.Update(ctx, group); err != nil {
		s.logger.Error("updating group failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "update", "group", group.GroupID, "")
	return toGroupResponse(group), nil
}

func (s *groupService) SetSchedule(ctx context.Context, id string, req *dto.SetScheduleRequest, caller Caller) (*dto.GroupResponse, error) {
	group, err := s.loadAuthorized(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if _, _, ok := schedule.ParseClock(req.TimeOfDay); !ok {
		return nil, ErrInvalidSchedule
	}
	if schedule.WeekdayIndex(req.DayOfWeek) < 0 {
		return nil, ErrInvalidSchedule
	}
	startDate, err := time.ParseInLocation(dateFormat, req.StartDate, time.Local)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	frequency := req.Frequency
	dayOfWeek := req.DayOfWeek
	timeOfDay := req.TimeOfDay
	group.MeetingFrequency = &frequency
	group.MeetingDay = &dayOfWeek
	group.MeetingTime = &timeOfDay
	group.MeetingStartDate = &startDate

	if err := s.repo.Group.Update(ctx, group); err != nil {
		s.logger.Error("updating group schedule failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "set_schedule", "group", group.GroupID,
		frequency+" "+dayOfWeek+" "+timeOfDay)
	return toGroupResponse(group), nil
}

func (s *groupService) Delete(ctx context.Context, id string, caller Caller) error {
	group, err := s.loadAuthorized(ctx, id, caller)
	if err != nil {
		return err
	}

	if err := s.repo.Group.Delete(ctx, id); err != nil {
		s.logger.Error("deleting group failed", zap.Error(err))
		return err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "delete", "group", id, group.Name)
	return nil
}

func (s *groupService) loadAuthorized(ctx context.Context, id string, caller Caller) (*model.Group, error) {
	group, err := s.repo.Group.GetByID(ctx, id)
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
	return group, nil
}

func toGroupResponse(g *model.Group) *dto.GroupResponse {
	resp := &dto.GroupResponse{
		ID:               g.GroupID,
		MinistryID:       g.MinistryID,
		Name:             g.Name,
		LeaderID:         g.LeaderID,
		Address:          g.Address,
		MeetingFrequency: g.MeetingFrequency,
		MeetingDay:       g.MeetingDay,
		MeetingTime:      g.MeetingTime,
		CreatedAt:        g.CreatedAt.Format(timeFormat),
	}
	if g.MeetingStartDate != nil {
		d := g.MeetingStartDate.Format(dateFormat)
		resp.MeetingStartDate = &d
	}
	if g.Ministry != nil {
		resp.MinistryName = g.Ministry.Name
	}
	if g.Leader != nil {
		resp.LeaderName = g.Leader.Name
	}
	return resp
}
