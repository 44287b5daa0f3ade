package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cellhub/backend/internal/model"
)

// MeetingStatusUpdate is one status delta to persist.
type MeetingStatusUpdate struct {
	MeetingID string
	Status    string
}

// MeetingRepository is the meeting data-access interface.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *model.Meeting) error
	CreateBatch(ctx context.Context, meetings []model.Meeting) error
	GetByID(ctx context.Context, id string) (*model.Meeting, error)
	ListByGroup(ctx context.Context, groupID string, from, to *time.Time) ([]model.Meeting, error)
	// ListDatesByGroup returns only the meeting timestamps of a group, for
	// projection dedup.
	ListDatesByGroup(ctx context.Context, groupID string) ([]time.Time, error)
	Update(ctx context.Context, meeting *model.Meeting) error
	UpdateStatus(ctx context.Context, id, status string) error
	// UpdateStatusBatch applies all deltas in one transaction.
	UpdateStatusBatch(ctx context.Context, updates []MeetingStatusUpdate) error
	Delete(ctx context.Context, id string) error
}

type meetingRepo struct {
	db *gorm.DB
}

// NewMeetingRepo creates a MeetingRepository backed by gorm.
func NewMeetingRepo(db *gorm.DB) MeetingRepository {
	return &meetingRepo{db: db}
}

func (r *meetingRepo) Create(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepo) CreateBatch(ctx context.Context, meetings []model.Meeting) error {
	if len(meetings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(meetings, 100).Error
}

func (r *meetingRepo) GetByID(ctx context.Context, id string) (*model.Meeting, error) {
	var meeting model.Meeting
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("meeting_id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepo) ListByGroup(ctx context.Context, groupID string, from, to *time.Time) ([]model.Meeting, error) {
	q := r.db.WithContext(ctx).Where("group_id = ?", groupID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	var meetings []model.Meeting
	err := q.Order("date ASC").Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepo) ListDatesByGroup(ctx context.Context, groupID string) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Where("group_id = ?", groupID).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}

func (r *meetingRepo) Update(ctx context.Context, meeting *model.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

func (r *meetingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Where("meeting_id = ?", id).
		Update("status", status).Error
}

func (r *meetingRepo) UpdateStatusBatch(ctx context.Context, updates []MeetingStatusUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&model.Meeting{}).
				Where("meeting_id = ?", u.MeetingID).
				Update("status", u.Status).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *meetingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("meeting_id = ?", id).Delete(&model.Meeting{}).Error
}
