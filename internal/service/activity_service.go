package service

import (
	"context"

	"go.uber.org/zap"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
)

// ActivityService exposes the audit trail. Reading it is restricted to
// admins and masters.
type ActivityService interface {
	List(ctx context.Context, req *dto.ListActivityRequest, caller Caller) ([]dto.ActivityLogResponse, int64, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService creates an ActivityService.
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) List(ctx context.Context, req *dto.ListActivityRequest, caller Caller) ([]dto.ActivityLogResponse, int64, error) {
	if caller.Role != model.RoleAdmin && caller.Role != model.RoleMaster {
		return nil, 0, ErrNotAllowed
	}

	entries, total, err := s.repo.Activity.List(ctx, req.Entity, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("listing activity log failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ActivityLogResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toActivityLogResponse(&entries[i]))
	}
	return result, total, nil
}

func toActivityLogResponse(e *model.ActivityLog) *dto.ActivityLogResponse {
	return &dto.ActivityLogResponse{
		ID:        e.LogID,
		ActorID:   e.ActorID,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt.Format(timeFormat),
	}
}
