package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
	"cellhub/backend/internal/schedule"
)

// GenerationReport summarizes one generation run. Created holds only
// groups that actually gained meetings; Warnings holds per-group failures
// that did not stop the run.
type GenerationReport struct {
	Created  map[string]int
	Warnings []string
}

// GenerationService materializes upcoming meetings for every group with a
// complete schedule configuration.
type GenerationService interface {
	// GenerateUpcoming projects each eligible group's recurrence out to now
	// plus horizonMonths and inserts the instances that do not yet exist.
	// A failure in one group is reported as a warning and does not affect
	// the others; only a failure to enumerate the groups themselves is
	// returned as an error.
	GenerateUpcoming(ctx context.Context, horizonMonths int) (*GenerationReport, error)
}

type generationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(repo *repository.Repository, logger *zap.Logger) GenerationService {
	return &generationService{repo: repo, logger: logger}
}

func (s *generationService) GenerateUpcoming(ctx context.Context, horizonMonths int) (*GenerationReport, error) {
	if horizonMonths <= 0 {
		horizonMonths = 3
	}
	now := time.Now()
	horizon := now.AddDate(0, horizonMonths, 0)

	groups, err := s.repo.Group.ListWithSchedule(ctx)
	if err != nil {
		s.logger.Error("listing schedulable groups failed", zap.Error(err))
		return nil, err
	}

	report := &GenerationReport{Created: make(map[string]int)}
	for i := range groups {
		group := &groups[i]
		created, err := s.generateForGroup(ctx, group, now, horizon)
		if err != nil {
			s.logger.Warn("meeting generation failed for group",
				zap.String("group_id", group.GroupID),
				zap.String("group", group.Name),
				zap.Error(err),
			)
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s (%s): %v", group.Name, group.GroupID, err))
			continue
		}
		if created > 0 {
			report.Created[group.GroupID] = created
		}
	}

	s.logger.Info("meeting generation finished",
		zap.Int("groups", len(groups)),
		zap.Int("groups_with_new_meetings", len(report.Created)),
		zap.Int("warnings", len(report.Warnings)),
	)
	return report, nil
}

func (s *generationService) generateForGroup(ctx context.Context, group *model.Group, now, horizon time.Time) (int, error) {
	rule, ok := group.ScheduleRule()
	if !ok {
		// ListWithSchedule already filters these out; skip quietly.
		return 0, nil
	}

	existing, err := s.repo.Meeting.ListDatesByGroup(ctx, group.GroupID)
	if err != nil {
		return 0, fmt.Errorf("listing existing meetings: %w", err)
	}

	dates := schedule.Project(rule, existing, now, horizon)
	if len(dates) == 0 {
		return 0, nil
	}

	startTime := rule.TimeOfDay
	meetings := make([]model.Meeting, 0, len(dates))
	for _, d := range dates {
		meetings = append(meetings, model.Meeting{
			GroupID:   group.GroupID,
			Date:      d,
			StartTime: &startTime,
			Status:    schedule.StatusScheduled,
			Type:      model.MeetingTypeRegular,
		})
	}

	if err := s.repo.Meeting.CreateBatch(ctx, meetings); err != nil {
		// Another run may have inserted the same dates concurrently; the
		// unique (group_id, date) index makes that a clean no-op here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, nil
		}
		return 0, fmt.Errorf("inserting meetings: %w", err)
	}
	return len(meetings), nil
}
