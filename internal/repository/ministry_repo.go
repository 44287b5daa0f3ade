package repository

import (
	"context"

	"gorm.io/gorm"

	"cellhub/backend/internal/model"
)

// MinistryRepository is the ministry data-access interface.
type MinistryRepository interface {
	Create(ctx context.Context, ministry *model.Ministry) error
	GetByID(ctx context.Context, id string) (*model.Ministry, error)
	List(ctx context.Context) ([]model.Ministry, error)
	ListByMaster(ctx context.Context, masterMinistryID string) ([]model.Ministry, error)
	Update(ctx context.Context, ministry *model.Ministry) error
	Delete(ctx context.Context, id string) error
}

type ministryRepo struct {
	db *gorm.DB
}

// NewMinistryRepo creates a MinistryRepository backed by gorm.
func NewMinistryRepo(db *gorm.DB) MinistryRepository {
	return &ministryRepo{db: db}
}

func (r *ministryRepo) Create(ctx context.Context, ministry *model.Ministry) error {
	return r.db.WithContext(ctx).Create(ministry).Error
}

func (r *ministryRepo) GetByID(ctx context.Context, id string) (*model.Ministry, error) {
	var ministry model.Ministry
	err := r.db.WithContext(ctx).
		Where("ministry_id = ?", id).
		First(&ministry).Error
	if err != nil {
		return nil, err
	}
	return &ministry, nil
}

func (r *ministryRepo) List(ctx context.Context) ([]model.Ministry, error) {
	var ministries []model.Ministry
	err := r.db.WithContext(ctx).Order("name ASC").Find(&ministries).Error
	return ministries, err
}

func (r *ministryRepo) ListByMaster(ctx context.Context, masterMinistryID string) ([]model.Ministry, error) {
	var ministries []model.Ministry
	err := r.db.WithContext(ctx).
		Where("master_ministry_id = ? OR ministry_id = ?", masterMinistryID, masterMinistryID).
		Order("name ASC").
		Find(&ministries).Error
	return ministries, err
}

func (r *ministryRepo) Update(ctx context.Context, ministry *model.Ministry) error {
	return r.db.WithContext(ctx).Save(ministry).Error
}

func (r *ministryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("ministry_id = ?", id).Delete(&model.Ministry{}).Error
}
