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

func adminCaller() Caller {
	return Caller{UserID: "admin-1", Role: model.RoleAdmin}
}

func seedMinistry(t *testing.T, mocks *testRepos, name string, masterID *string) *model.Ministry {
	t.Helper()
	ministry := &model.Ministry{Name: name, MasterMinistryID: masterID}
	if err := mocks.ministries.Create(context.Background(), ministry); err != nil {
		t.Fatalf("seeding ministry: %v", err)
	}
	return ministry
}

func TestGroupSetScheduleStoresRule(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGroupService(repo, NewReconciler(repo, zap.NewNop()), zap.NewNop())

	ministry := seedMinistry(t, mocks, "City Church", nil)
	created, err := svc.Create(context.Background(), &dto.CreateGroupRequest{
		MinistryID: ministry.MinistryID,
		Name:       "North",
	}, adminCaller())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := svc.SetSchedule(context.Background(), created.ID, &dto.SetScheduleRequest{
		Frequency: "weekly",
		DayOfWeek: "thursday",
		TimeOfDay: "18:30",
		StartDate: "2024-01-01",
	}, adminCaller())
	if err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}
	if resp.MeetingFrequency == nil || *resp.MeetingFrequency != "weekly" {
		t.Errorf("frequency not stored: %v", resp.MeetingFrequency)
	}
	if resp.MeetingStartDate == nil || *resp.MeetingStartDate != "2024-01-01" {
		t.Errorf("start date not stored: %v", resp.MeetingStartDate)
	}

	stored, _ := mocks.groups.GetByID(context.Background(), created.ID)
	if rule, ok := stored.ScheduleRule(); !ok {
		t.Fatal("stored group has no complete schedule rule")
	} else if rule.TimeOfDay != "18:30" || rule.DayOfWeek != "thursday" {
		t.Errorf("unexpected rule: %+v", rule)
	}
}

func TestGroupSetScheduleRejectsBadInput(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGroupService(repo, NewReconciler(repo, zap.NewNop()), zap.NewNop())

	ministry := seedMinistry(t, mocks, "City Church", nil)
	created, err := svc.Create(context.Background(), &dto.CreateGroupRequest{
		MinistryID: ministry.MinistryID,
		Name:       "North",
	}, adminCaller())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	cases := []dto.SetScheduleRequest{
		{Frequency: "weekly", DayOfWeek: "thursday", TimeOfDay: "25:00", StartDate: "2024-01-01"},
		{Frequency: "weekly", DayOfWeek: "someday", TimeOfDay: "18:30", StartDate: "2024-01-01"},
		{Frequency: "weekly", DayOfWeek: "thursday", TimeOfDay: "18:30", StartDate: "01/01/2024"},
	}
	for i, req := range cases {
		if _, err := svc.SetSchedule(context.Background(), created.ID, &req, adminCaller()); !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("case %d: expected ErrInvalidSchedule, got %v", i, err)
		}
	}
}

func TestGroupGetDetailReconcilesStatuses(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGroupService(repo, NewReconciler(repo, zap.NewNop()), zap.NewNop())

	ministry := seedMinistry(t, mocks, "City Church", nil)
	group := &model.Group{MinistryID: ministry.MinistryID, Name: "North"}
	if err := mocks.groups.Create(context.Background(), group); err != nil {
		t.Fatalf("seeding group: %v", err)
	}

	// A meeting well in the past, still marked scheduled.
	past := seedMeeting(t, mocks, group.GroupID,
		time.Date(2020, 3, 5, 19, 0, 0, 0, time.UTC),
		strPtr("19:00"), nil, schedule.StatusScheduled)

	detail, err := svc.GetDetail(context.Background(), group.GroupID, adminCaller())
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if len(detail.Meetings) != 1 {
		t.Fatalf("expected 1 meeting, got %d", len(detail.Meetings))
	}
	if detail.Meetings[0].Status != schedule.StatusFinished {
		t.Errorf("rendered status %s, want finished", detail.Meetings[0].Status)
	}

	stored, _ := mocks.meetings.GetByID(context.Background(), past.MeetingID)
	if stored.Status != schedule.StatusFinished {
		t.Errorf("stored status %s, want finished", stored.Status)
	}
}

func TestGroupAccessScoping(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGroupService(repo, NewReconciler(repo, zap.NewNop()), zap.NewNop())

	ministryA := seedMinistry(t, mocks, "A", nil)
	ministryB := seedMinistry(t, mocks, "B", nil)

	group := &model.Group{MinistryID: ministryA.MinistryID, Name: "North"}
	if err := mocks.groups.Create(context.Background(), group); err != nil {
		t.Fatalf("seeding group: %v", err)
	}

	outsider := Caller{UserID: "leader-1", Role: model.RoleLeader, MinistryID: ministryB.MinistryID}
	if _, err := svc.GetDetail(context.Background(), group.GroupID, outsider); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed for foreign leader, got %v", err)
	}

	owner := Caller{UserID: "leader-2", Role: model.RoleLeader, MinistryID: ministryA.MinistryID}
	if _, err := svc.GetDetail(context.Background(), group.GroupID, owner); err != nil {
		t.Fatalf("owning leader rejected: %v", err)
	}
}

func TestGroupGetDetailNotFound(t *testing.T) {
	repo, _ := newTestRepos()
	svc := NewGroupService(repo, NewReconciler(repo, zap.NewNop()), zap.NewNop())

	if _, err := svc.GetDetail(context.Background(), "missing", adminCaller()); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}
