package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"cellhub/backend/internal/dto"
	"cellhub/backend/internal/model"
	"cellhub/backend/internal/schedule"
)

func TestSetAttendancesReplacesList(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewAttendanceService(repo, zap.NewNop())

	ministry := seedMinistry(t, mocks, "City Church", nil)
	group := &model.Group{MinistryID: ministry.MinistryID, Name: "North"}
	if err := mocks.groups.Create(context.Background(), group); err != nil {
		t.Fatalf("seeding group: %v", err)
	}
	meeting := seedMeeting(t, mocks, group.GroupID,
		time.Date(2030, 3, 5, 19, 0, 0, 0, time.UTC),
		strPtr("19:00"), nil, schedule.StatusScheduled)

	first, err := svc.SetForMeeting(context.Background(), meeting.MeetingID, &dto.SetAttendancesRequest{
		Attendances: []dto.AttendanceItem{
			{MemberName: "Ana", Present: true},
			{MemberName: "Bruno", Present: false},
		},
	}, adminCaller())
	if err != nil {
		t.Fatalf("SetForMeeting: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 attendances, got %d", len(first))
	}

	// A second call replaces, never appends.
	second, err := svc.SetForMeeting(context.Background(), meeting.MeetingID, &dto.SetAttendancesRequest{
		Attendances: []dto.AttendanceItem{
			{MemberName: "Carla", Present: true},
		},
	}, adminCaller())
	if err != nil {
		t.Fatalf("second SetForMeeting: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected 1 attendance after replace, got %d", len(second))
	}

	listed, err := svc.ListForMeeting(context.Background(), meeting.MeetingID, adminCaller())
	if err != nil {
		t.Fatalf("ListForMeeting: %v", err)
	}
	if len(listed) != 1 || listed[0].MemberName != "Carla" {
		t.Fatalf("unexpected stored attendance: %+v", listed)
	}
}

func TestSetAttendancesUnknownMeeting(t *testing.T) {
	repo, _ := newTestRepos()
	svc := NewAttendanceService(repo, zap.NewNop())

	_, err := svc.SetForMeeting(context.Background(), "missing", &dto.SetAttendancesRequest{
		Attendances: []dto.AttendanceItem{{MemberName: "Ana", Present: true}},
	}, adminCaller())
	if !errors.Is(err, ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}
