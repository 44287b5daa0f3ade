package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
)

var (
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")
	ErrInvalidLedgerEntry  = errors.New("invalid ledger entry")
)

// LedgerService manages group finances.
type LedgerService interface {
	CreateEntry(ctx context.Context, groupID string, req *dto.CreateLedgerEntryRequest, caller Caller) (*dto.LedgerEntryResponse, error)
	ListByGroup(ctx context.Context, groupID string, page *dto.PageRequest, caller Caller) ([]dto.LedgerEntryResponse, int64, error)
	// Report returns income, expense, and balance totals for the group.
	Report(ctx context.Context, groupID string, caller Caller) (*dto.LedgerReportResponse, error)
	DeleteEntry(ctx context.Context, groupID, entryID string, caller Caller) error
}

type ledgerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(repo *repository.Repository, logger *zap.Logger) LedgerService {
	return &ledgerService{repo: repo, logger: logger}
}

func (s *ledgerService) CreateEntry(ctx context.Context, groupID string, req *dto.CreateLedgerEntryRequest, caller Caller) (*dto.LedgerEntryResponse, error) {
	if err := s.authorizeGroup(ctx, groupID, caller); err != nil {
		return nil, err
	}

	entryDate, err := time.ParseInLocation(dateFormat, req.EntryDate, time.Local)
	if err != nil {
		return nil, ErrInvalidLedgerEntry
	}

	entry := &model.LedgerEntry{
		GroupID:     groupID,
		Kind:        req.Kind,
		AmountCents: req.AmountCents,
		Description: req.Description,
		EntryDate:   entryDate,
	}
	if caller.UserID != "" {
		actor := caller.UserID
		entry.RecordedBy = &actor
	}

	if err := s.repo.Ledger.Create(ctx, entry); err != nil {
		s.logger.Error("creating ledger entry failed", zap.Error(err))
		return nil, err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "create", "ledger_entry", entry.EntryID, req.Kind)
	return toLedgerEntryResponse(entry), nil
}

func (s *ledgerService) ListByGroup(ctx context.Context, groupID string, page *dto.PageRequest, caller Caller) ([]dto.LedgerEntryResponse, int64, error) {
	if err := s.authorizeGroup(ctx, groupID, caller); err != nil {
		return nil, 0, err
	}

	entries, total, err := s.repo.Ledger.ListByGroup(ctx, groupID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("listing ledger entries failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toLedgerEntryResponse(&entries[i]))
	}
	return result, total, nil
}

func (s *ledgerService) Report(ctx context.Context, groupID string, caller Caller) (*dto.LedgerReportResponse, error) {
	if err := s.authorizeGroup(ctx, groupID, caller); err != nil {
		return nil, err
	}

	totals, err := s.repo.Ledger.Totals(ctx, groupID)
	if err != nil {
		s.logger.Error("computing ledger totals failed", zap.Error(err))
		return nil, err
	}

	return &dto.LedgerReportResponse{
		GroupID:      groupID,
		IncomeCents:  totals.IncomeCents,
		ExpenseCents: totals.ExpenseCents,
		BalanceCents: totals.IncomeCents - totals.ExpenseCents,
	}, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, groupID, entryID string, caller Caller) error {
	if err := s.authorizeGroup(ctx, groupID, caller); err != nil {
		return err
	}

	entry, err := s.repo.Ledger.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLedgerEntryNotFound
		}
		s.logger.Error("loading ledger entry failed", zap.Error(err))
		return err
	}
	if entry.GroupID != groupID {
		return ErrLedgerEntryNotFound
	}

	if err := s.repo.Ledger.Delete(ctx, entryID); err != nil {
		s.logger.Error("deleting ledger entry failed", zap.Error(err))
		return err
	}

	recordActivity(ctx, s.repo, s.logger, caller.UserID, "delete", "ledger_entry", entryID, "")
	return nil
}

func (s *ledgerService) authorizeGroup(ctx context.Context, groupID string, caller Caller) error {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		s.logger.Error("loading group failed", zap.Error(err))
		return err
	}
	if !canAccessGroup(caller, group) {
		return ErrNotAllowed
	}
	return nil
}

func toLedgerEntryResponse(e *model.LedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:          e.EntryID,
		GroupID:     e.GroupID,
		Kind:        e.Kind,
		AmountCents: e.AmountCents,
		Description: e.Description,
		EntryDate:   e.EntryDate.Format(dateFormat),
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt.Format(timeFormat),
	}
}
