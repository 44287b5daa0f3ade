package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
	"cellhub/backend/internal/schedule"
)

// Reconciler corrects stored meeting statuses against the status derived
// from the clock and attendance. It runs opportunistically on read paths:
// there is no background scheduler, a group or meeting detail read triggers
// it. Reconciliation is best effort; a read never fails because a status
// write failed, the caller just sees the previously stored status.
type Reconciler struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(repo *repository.Repository, logger *zap.Logger) *Reconciler {
	return &Reconciler{repo: repo, logger: logger}
}

// Reconcile derives the correct status of every non-cancelled meeting,
// persists only the deltas in one batched update, and mutates the slice in
// place so callers render the corrected statuses. The batch is retried once
// as a whole; if both attempts fail the stored statuses stand.
//
// Two concurrent reconciliations of the same meetings derive the same
// target statuses from the same inputs, so a duplicate write is redundant,
// not incorrect.
func (r *Reconciler) Reconcile(ctx context.Context, meetings []model.Meeting, now time.Time) []repository.MeetingStatusUpdate {
	if len(meetings) == 0 {
		return nil
	}

	ids := make([]string, 0, len(meetings))
	for i := range meetings {
		if meetings[i].Status == schedule.StatusCancelled {
			continue
		}
		ids = append(ids, meetings[i].MeetingID)
	}
	if len(ids) == 0 {
		return nil
	}

	present, err := r.repo.Attendance.PresentMeetingIDs(ctx, ids)
	if err != nil {
		r.logger.Warn("reconciliation skipped: loading attendance failed", zap.Error(err))
		return nil
	}

	var updates []repository.MeetingStatusUpdate
	changed := make(map[string]string)
	for i := range meetings {
		m := &meetings[i]
		if m.Status == schedule.StatusCancelled {
			continue
		}

		derived := schedule.Resolve(schedule.Window{
			Date:       m.Date,
			StartTime:  strOrEmpty(m.StartTime),
			EndTime:    strOrEmpty(m.EndTime),
			HasPresent: present[m.MeetingID],
		}, now)

		if derived != m.Status {
			updates = append(updates, repository.MeetingStatusUpdate{MeetingID: m.MeetingID, Status: derived})
			changed[m.MeetingID] = derived
		}
	}
	if len(updates) == 0 {
		return nil
	}

	if err := r.repo.Meeting.UpdateStatusBatch(ctx, updates); err != nil {
		r.logger.Warn("status batch update failed, retrying once", zap.Error(err))
		if err := r.repo.Meeting.UpdateStatusBatch(ctx, updates); err != nil {
			r.logger.Error("status batch update failed after retry, statuses left stale",
				zap.Int("pending", len(updates)),
				zap.Error(err),
			)
			return nil
		}
	}

	for i := range meetings {
		if status, ok := changed[meetings[i].MeetingID]; ok {
			meetings[i].Status = status
		}
	}

	r.logger.Info("meeting statuses reconciled", zap.Int("updated", len(updates)))
	return updates
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
