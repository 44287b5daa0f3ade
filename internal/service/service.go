package service

import (
	"context"

	"go.uber.org/zap"

	"cellhub/backend/config"
	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
	"cellhub/backend/pkg/jwt"
	"cellhub/backend/pkg/redis"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"
const dateFormat = "2006-01-02"

// Caller is the authenticated identity handed down from the JWT middleware.
type Caller struct {
	UserID           string
	Role             string
	MinistryID       string
	MasterMinistryID string
}

// IsAdmin reports whether the caller has the admin role.
func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// Service aggregates every business service.
type Service struct {
	Auth       AuthService
	User       UserService
	Ministry   MinistryService
	Group      GroupService
	Meeting    MeetingService
	Generation GenerationService
	Attendance AttendanceService
	Ledger     LedgerService
	Event      EventService
	Activity   ActivityService
	Export     ExportService
	Calendar   CalendarService
}

// NewService builds the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	reconciler := NewReconciler(repo, logger)

	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Ministry:   NewMinistryService(repo, logger),
		Group:      NewGroupService(repo, reconciler, logger),
		Meeting:    NewMeetingService(repo, reconciler, logger),
		Generation: NewGenerationService(repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Ledger:     NewLedgerService(repo, logger),
		Event:      NewEventService(repo, logger),
		Activity:   NewActivityService(repo, logger),
		Export:     NewExportService(repo, logger),
		Calendar:   NewCalendarService(repo, logger),
	}
}

// ── shared helpers ──

// canAccessGroup checks caller identity against group ownership. The group
// must have its Ministry association loaded for master scoping.
func canAccessGroup(caller Caller, group *model.Group) bool {
	switch caller.Role {
	case model.RoleAdmin:
		return true
	case model.RoleMaster:
		if caller.MasterMinistryID == "" {
			return false
		}
		if group.MinistryID == caller.MasterMinistryID {
			return true
		}
		return group.Ministry != nil &&
			group.Ministry.MasterMinistryID != nil &&
			*group.Ministry.MasterMinistryID == caller.MasterMinistryID
	case model.RoleLeader:
		return caller.MinistryID != "" && group.MinistryID == caller.MinistryID
	default:
		return false
	}
}

// canAccessMinistry checks caller identity against a ministry.
func canAccessMinistry(caller Caller, ministry *model.Ministry) bool {
	switch caller.Role {
	case model.RoleAdmin:
		return true
	case model.RoleMaster:
		if caller.MasterMinistryID == "" {
			return false
		}
		if ministry.MinistryID == caller.MasterMinistryID {
			return true
		}
		return ministry.MasterMinistryID != nil && *ministry.MasterMinistryID == caller.MasterMinistryID
	case model.RoleLeader:
		return caller.MinistryID != "" && ministry.MinistryID == caller.MinistryID
	default:
		return false
	}
}

// accessibleMinistryIDs returns the ministry IDs the caller may see, or nil
// for unrestricted (admin).
func accessibleMinistryIDs(ctx context.Context, repo *repository.Repository, caller Caller) ([]string, error) {
	switch caller.Role {
	case model.RoleAdmin:
		return nil, nil
	case model.RoleMaster:
		if caller.MasterMinistryID == "" {
			return []string{}, nil
		}
		ministries, err := repo.Ministry.ListByMaster(ctx, caller.MasterMinistryID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(ministries))
		for _, m := range ministries {
			ids = append(ids, m.MinistryID)
		}
		return ids, nil
	default:
		if caller.MinistryID == "" {
			return []string{}, nil
		}
		return []string{caller.MinistryID}, nil
	}
}

// recordActivity appends to the audit trail. Best effort: failures are
// logged, never propagated.
func recordActivity(ctx context.Context, repo *repository.Repository, logger *zap.Logger, actorID, action, entity, entityID, detail string) {
	entry := &model.ActivityLog{
		Action: action,
		Entity: entity,
		Detail: detail,
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}
	if err := repo.Activity.Create(ctx, entry); err != nil {
		logger.Warn("recording activity failed",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err),
		)
	}
}
