package repository

import (
	"context"

	"gorm.io/gorm"

	"cellhub/backend/internal/model"
)

// LedgerTotals aggregates a group's ledger by kind.
type LedgerTotals struct {
	IncomeCents  int64
	ExpenseCents int64
}

// LedgerRepository is the financial ledger data-access interface.
type LedgerRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*model.LedgerEntry, error)
	ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]model.LedgerEntry, int64, error)
	Totals(ctx context.Context, groupID string) (*LedgerTotals, error)
	Delete(ctx context.Context, id string) error
}

type ledgerRepo struct {
	db *gorm.DB
}

// NewLedgerRepo creates a LedgerRepository backed by gorm.
func NewLedgerRepo(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Create(ctx context.Context, entry *model.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepo) GetByID(ctx context.Context, id string) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepo) ListByGroup(ctx context.Context, groupID string, offset, limit int) ([]model.LedgerEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).Where("group_id = ?", groupID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.LedgerEntry
	err := q.Order("entry_date DESC, created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}

func (r *ledgerRepo) Totals(ctx context.Context, groupID string) (*LedgerTotals, error) {
	type row struct {
		Kind  string
		Total int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.LedgerEntry{}).
		Select("kind, COALESCE(SUM(amount_cents), 0) AS total").
		Where("group_id = ?", groupID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := &LedgerTotals{}
	for _, r := range rows {
		switch r.Kind {
		case model.LedgerKindIncome:
			totals.IncomeCents = r.Total
		case model.LedgerKindExpense:
			totals.ExpenseCents = r.Total
		}
	}
	return totals, nil
}

func (r *ledgerRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("entry_id = ?", id).Delete(&model.LedgerEntry{}).Error
}
