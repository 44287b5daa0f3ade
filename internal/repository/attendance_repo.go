package repository

import (
	"context"

	"gorm.io/gorm"

	"cellhub/backend/internal/model"
)

// AttendanceRepository is the attendance data-access interface.
type AttendanceRepository interface {
	ListByMeeting(ctx context.Context, meetingID string) ([]model.Attendance, error)
	ListByMeetings(ctx context.Context, meetingIDs []string) ([]model.Attendance, error)
	// PresentMeetingIDs returns, for the given meetings, which ones have at
	// least one attendance row with present = true.
	PresentMeetingIDs(ctx context.Context, meetingIDs []string) (map[string]bool, error)
	// ReplaceForMeeting swaps a meeting's attendance list atomically.
	ReplaceForMeeting(ctx context.Context, meetingID string, attendances []model.Attendance) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates an AttendanceRepository backed by gorm.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) ListByMeeting(ctx context.Context, meetingID string) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("member_name ASC").
		Find(&attendances).Error
	return attendances, err
}

func (r *attendanceRepo) ListByMeetings(ctx context.Context, meetingIDs []string) ([]model.Attendance, error) {
	if len(meetingIDs) == 0 {
		return nil, nil
	}
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Where("meeting_id IN ?", meetingIDs).
		Find(&attendances).Error
	return attendances, err
}

func (r *attendanceRepo) PresentMeetingIDs(ctx context.Context, meetingIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(meetingIDs))
	if len(meetingIDs) == 0 {
		return result, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("meeting_id IN ? AND present = ?", meetingIDs, true).
		Distinct().
		Pluck("meeting_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *attendanceRepo) ReplaceForMeeting(ctx context.Context, meetingID string, attendances []model.Attendance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		if len(attendances) == 0 {
			return nil
		}
		return tx.Create(&attendances).Error
	})
}
