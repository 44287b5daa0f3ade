package repository

import (
	"context"

	"gorm.io/gorm"

	"cellhub/backend/internal/model"
)

// EventRepository is the event data-access interface.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListByMinistries(ctx context.Context, ministryIDs []string) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates an EventRepository backed by gorm.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) ListByMinistries(ctx context.Context, ministryIDs []string) ([]model.Event, error) {
	q := r.db.WithContext(ctx)
	if len(ministryIDs) > 0 {
		q = q.Where("ministry_id IN ?", ministryIDs)
	}

	var events []model.Event
	err := q.Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("event_id = ?", id).Delete(&model.Event{}).Error
}
