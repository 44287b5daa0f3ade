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

var ErrMinistryNotFound = errors.New("ministry not found")

// MinistryService manages ministries (tenants).
type MinistryService interface {
	Create(ctx context.Context, req *dto.CreateMinistryRequest, caller Caller) (*dto.MinistryResponse, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.MinistryResponse, error)
	List(ctx context.Context, caller Caller) ([]dto.MinistryResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateMinistryRequest, caller Caller) (*dto.MinistryResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type ministryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMinistryService creates a MinistryService.
func NewMinistryService(repo *repository.Repository, logger *zap.Logger) MinistryService {
	return &ministryService{repo: repo, logger: logger}
}

func (s *ministryService) Create(ctx context.Context, req *dto.CreateMinistryRequest, caller Caller) (*dto.MinistryResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrNotAllowed
	}

	ministry := &model.Ministry{
		Name:             req.Name,
		MasterMinistryID: req.MasterMinistryID,
	}
	if err := s.repo.Ministry.Create(ctx, ministry); err != nil {
		s.logger.Error("creating ministry failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "create", "ministry", ministry.MinistryID, ministry.Name)
	return toMinistryResponse(ministry), nil
}

func (s *ministryService) GetByID(ctx context.Context, id string, caller Caller) (*dto.MinistryResponse, error) {
	ministry, err := s.repo.Ministry.GetByID(ctx, id)
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
	return toMinistryResponse(ministry), nil
}

func (s *ministryService) List(ctx context.Context, caller Caller) ([]dto.MinistryResponse, error) {
	var (
		ministries []model.Ministry
		err        error
	)
	if caller.IsAdmin() {
		ministries, err = s.repo.Ministry.List(ctx)
	} else if caller.Role == model.RoleMaster && caller.MasterMinistryID != "" {
		ministries, err = s.repo.Ministry.ListByMaster(ctx, caller.MasterMinistryID)
	} else if caller.MinistryID != "" {
		var m *model.Ministry
		m, err = s.repo.Ministry.GetByID(ctx, caller.MinistryID)
		if err == nil {
			ministries = []model.Ministry{*m}
		}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("listing ministries failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MinistryResponse, 0, len(ministries))
	for i := range ministries {
		result = append(result, *toMinistryResponse(&ministries[i]))
	}
	return result, nil
}

func (s *ministryService) Update(ctx context.Context, id string, req *dto.UpdateMinistryRequest, caller Caller) (*dto.MinistryResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrNotAllowed
	}

	ministry, err := s.repo.Ministry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMinistryNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		ministry.Name = *req.Name
	}
	if req.MasterMinistryID != nil {
		ministry.MasterMinistryID = req.MasterMinistryID
	}

	if err := s.repo.Ministry.Update(ctx, ministry); err != nil {
		s.logger.Error("updating ministry failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "update", "ministry", ministry.MinistryID, "")
	return toMinistryResponse(ministry), nil
}

func (s *ministryService) Delete(ctx context.Context, id string, caller Caller) error {
	if !caller.IsAdmin() {
		return ErrNotAllowed
	}

	if _, err := s.repo.Ministry.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMinistryNotFound
		}
		return err
	}

	if err := s.repo.Ministry.Delete(ctx, id); err != nil {
		s.logger.Error("deleting ministry failed", zap.Error(err))
		return err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "delete", "ministry", id, "")
	return nil
}

func toMinistryResponse(m *model.Ministry) *dto.MinistryResponse {
	return &dto.MinistryResponse{
		ID:               m.MinistryID,
		Name:             m.Name,
		MasterMinistryID: m.MasterMinistryID,
		CreatedAt:        m.CreatedAt.Format(timeFormat),
	}
}
