package repository

import (
	"context"

	"gorm.io/gorm"

	"cellhub/backend/internal/model"
)

// GroupRepository is the cell group data-access interface.
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	List(ctx context.Context, ministryIDs []string) ([]model.Group, error)
	// ListWithSchedule returns groups whose four meeting_* columns are all
	// set, i.e. the groups eligible for meeting generation.
	ListWithSchedule(ctx context.Context) ([]model.Group, error)
	Update(ctx context.Context, group *model.Group) error
	Delete(ctx context.Context, id string) error
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo creates a GroupRepository backed by gorm.
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Preload("Ministry").
		Preload("Leader").
		Where("group_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) List(ctx context.Context, ministryIDs []string) ([]model.Group, error) {
	q := r.db.WithContext(ctx).Preload("Ministry")
	if len(ministryIDs) > 0 {
		q = q.Where("ministry_id IN ?", ministryIDs)
	}

	var groups []model.Group
	err := q.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *groupRepo) ListWithSchedule(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Where("meeting_frequency IS NOT NULL").
		Where("meeting_day IS NOT NULL").
		Where("meeting_time IS NOT NULL").
		Where("meeting_start_date IS NOT NULL").
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *groupRepo) Update(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// Delete removes the group; meetings and attendances cascade at the
// database level.
func (r *groupRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("group_id = ?", id).Delete(&model.Group{}).Error
}
