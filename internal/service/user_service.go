package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrNotAllowed     = errors.New("not allowed")
	ErrMasterRequired = errors.New("master role requires a master ministry")
)

// UserService manages accounts and roles.
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, caller Caller) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string, caller Caller) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.ListUsersRequest, caller Caller) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller Caller) (*dto.UserResponse, error)
	AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, caller Caller) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, caller Caller) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, caller Caller) (*dto.UserResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrNotAllowed
	}
	if req.Role == model.RoleMaster && req.MasterMinistryID == nil {
		return nil, ErrMasterRequired
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("checking email failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     string(hash),
		Role:             req.Role,
		MinistryID:       req.MinistryID,
		MasterMinistryID: req.MasterMinistryID,
		Active:           true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("creating user failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "create", "user", user.UserID, user.Email)
	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string, caller Caller) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("loading user failed", zap.Error(err))
		return nil, err
	}

	if !caller.IsAdmin() && caller.UserID != id {
		// non-admins may look up users of their own ministry only
		if user.MinistryID == nil || caller.MinistryID == "" || *user.MinistryID != caller.MinistryID {
			return nil, ErrNotAllowed
		}
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.ListUsersRequest, caller Caller) ([]dto.UserResponse, int64, error) {
	ministryID := req.MinistryID
	if !caller.IsAdmin() {
		// non-admins are pinned to their own ministry regardless of filter
		ministryID = caller.MinistryID
		if ministryID == "" {
			return []dto.UserResponse{}, 0, nil
		}
	}

	users, total, err := s.repo.User.List(ctx, ministryID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("listing users failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller Caller) (*dto.UserResponse, error) {
	if !caller.IsAdmin() && caller.UserID != id {
		return nil, ErrNotAllowed
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	// ministry moves and deactivation are admin-only
	if caller.IsAdmin() {
		if req.MinistryID != nil {
			user.MinistryID = req.MinistryID
		}
		if req.Active != nil {
			user.Active = *req.Active
		}
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("updating user failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "update", "user", user.UserID, "")
	return toUserResponse(user), nil
}

func (s *userService) AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, caller Caller) (*dto.UserResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrNotAllowed
	}
	if req.Role == model.RoleMaster && req.MasterMinistryID == nil {
		return nil, ErrMasterRequired
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Role = req.Role
	user.MasterMinistryID = req.MasterMinistryID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("assigning role failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "assign_role", "user", user.UserID, req.Role)
	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id string, caller Caller) error {
	if !caller.IsAdmin() {
		return ErrNotAllowed
	}

	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("deleting user failed", zap.Error(err))
		return err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "delete", "user", id, "")
	return nil
}

func toUserResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:               u.UserID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		MinistryID:       u.MinistryID,
		MasterMinistryID: u.MasterMinistryID,
		Active:           u.Active,
		CreatedAt:        u.CreatedAt.Format(timeFormat),
	}
	if u.Ministry != nil {
		resp.MinistryName = u.Ministry.Name
	}
	return resp
}
