package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cellhub/backend/internal/model"
	"cellhub/backend/internal/repository"
)

var (
	ErrExportNoMeetings = errors.New("group has no meetings to export")
	ErrExportNoEntries  = errors.New("group has no ledger entries to export")
	ErrExportGenerate   = errors.New("generating excel file failed")
)

// ExportService produces Excel downloads. Files are returned as a
// bytes.Buffer; the handler layer sets the HTTP headers and streams it.
type ExportService interface {
	// ExportAttendance renders a group's meetings with their attendance
	// lists, one meeting per section.
	ExportAttendance(ctx context.Context, groupID string, caller Caller) (*bytes.Buffer, string, error)
	// ExportLedger renders a group's ledger entries plus a totals row.
	ExportLedger(ctx context.Context, groupID string, caller Caller) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportAttendance(ctx context.Context, groupID string, caller Caller) (*bytes.Buffer, string, error) {
	group, err := s.loadGroup(ctx, groupID, caller)
	if err != nil {
		return nil, "", err
	}

	meetings, err := s.repo.Meeting.ListByGroup(ctx, groupID, nil, nil)
	if err != nil {
		s.logger.Error("listing meetings failed", zap.Error(err))
		return nil, "", err
	}
	if len(meetings) == 0 {
		return nil, "", ErrExportNoMeetings
	}

	meetingIDs := make([]string, 0, len(meetings))
	for _, m := range meetings {
		meetingIDs = append(meetingIDs, m.MeetingID)
	}
	attendances, err := s.repo.Attendance.ListByMeetings(ctx, meetingIDs)
	if err != nil {
		s.logger.Error("listing attendances failed", zap.Error(err))
		return nil, "", err
	}
	byMeeting := make(map[string][]model.Attendance)
	for _, a := range attendances {
		byMeeting[a.MeetingID] = append(byMeeting[a.MeetingID], a)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 24)
	f.SetColWidth(sheetName, "D", "D", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Attendance", group.Name))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, xcell("A", row), "Meeting date")
	f.SetCellValue(sheetName, xcell("B", row), "Status")
	f.SetCellValue(sheetName, xcell("C", row), "Member")
	f.SetCellValue(sheetName, xcell("D", row), "Present")
	row++

	for _, m := range meetings {
		date := m.Date.Format("2006-01-02 15:04")
		list := byMeeting[m.MeetingID]
		if len(list) == 0 {
			f.SetCellValue(sheetName, xcell("A", row), date)
			f.SetCellValue(sheetName, xcell("B", row), m.Status)
			f.SetCellValue(sheetName, xcell("C", row), "-")
			f.SetCellValue(sheetName, xcell("D", row), "-")
			row++
			continue
		}
		for _, a := range list {
			f.SetCellValue(sheetName, xcell("A", row), date)
			f.SetCellValue(sheetName, xcell("B", row), m.Status)
			f.SetCellValue(sheetName, xcell("C", row), a.MemberName)
			if a.Present {
				f.SetCellValue(sheetName, xcell("D", row), "yes")
			} else {
				f.SetCellValue(sheetName, xcell("D", row), "no")
			}
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing excel failed", zap.Error(err))
		return nil, "", ErrExportGenerate
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", group.Name)
	return buf, filename, nil
}

func (s *exportService) ExportLedger(ctx context.Context, groupID string, caller Caller) (*bytes.Buffer, string, error) {
	group, err := s.loadGroup(ctx, groupID, caller)
	if err != nil {
		return nil, "", err
	}

	entries, _, err := s.repo.Ledger.ListByGroup(ctx, groupID, 0, 10000)
	if err != nil {
		s.logger.Error("listing ledger entries failed", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Ledger"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 40)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Ledger", group.Name))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, xcell("A", row), "Date")
	f.SetCellValue(sheetName, xcell("B", row), "Kind")
	f.SetCellValue(sheetName, xcell("C", row), "Amount")
	f.SetCellValue(sheetName, xcell("D", row), "Description")
	row++

	var income, expense int64
	for _, e := range entries {
		f.SetCellValue(sheetName, xcell("A", row), e.EntryDate.Format(dateFormat))
		f.SetCellValue(sheetName, xcell("B", row), e.Kind)
		f.SetCellValue(sheetName, xcell("C", row), centsToUnits(e.AmountCents))
		f.SetCellValue(sheetName, xcell("D", row), e.Description)
		switch e.Kind {
		case model.LedgerKindIncome:
			income += e.AmountCents
		case model.LedgerKindExpense:
			expense += e.AmountCents
		}
		row++
	}

	row++
	f.SetCellValue(sheetName, xcell("A", row), "Income")
	f.SetCellValue(sheetName, xcell("C", row), centsToUnits(income))
	row++
	f.SetCellValue(sheetName, xcell("A", row), "Expense")
	f.SetCellValue(sheetName, xcell("C", row), centsToUnits(expense))
	row++
	f.SetCellValue(sheetName, xcell("A", row), "Balance")
	f.SetCellValue(sheetName, xcell("C", row), centsToUnits(income-expense))

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing excel failed", zap.Error(err))
		return nil, "", ErrExportGenerate
	}

	filename := fmt.Sprintf("ledger_%s.xlsx", group.Name)
	return buf, filename, nil
}

func (s *exportService) loadGroup(ctx context.Context, groupID string, caller Caller) (*model.Group, error) {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("loading group failed", zap.Error(err))
		return nil, err
	}
	if !canAccessGroup(caller, group) {
		return nil, ErrNotAllowed
	}
	return group, nil
}

func centsToUnits(cents int64) float64 {
	return float64(cents) / 100
}

func xcell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
