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

func newMeetingFixture(t *testing.T) (MeetingService, *testRepos, *model.Group) {
	t.Helper()
	repo, mocks := newTestRepos()
	svc := NewMeetingService(repo, NewReconciler(repo, zap.NewNop()), zap.NewNop())

	ministry := seedMinistry(t, mocks, "City Church", nil)
	group := &model.Group{MinistryID: ministry.MinistryID, Name: "North"}
	if err := mocks.groups.Create(context.Background(), group); err != nil {
		t.Fatalf("seeding group: %v", err)
	}
	return svc, mocks, group
}

func TestCreateAdHocMeeting(t *testing.T) {
	svc, mocks, group := newMeetingFixture(t)

	resp, err := svc.CreateAdHoc(context.Background(), group.GroupID, &dto.CreateMeetingRequest{
		Date:      "2030-05-10T20:00:00Z",
		StartTime: strPtr("20:00"),
	}, adminCaller())
	if err != nil {
		t.Fatalf("CreateAdHoc: %v", err)
	}
	if resp.Status != schedule.StatusScheduled {
		t.Errorf("status %s, want scheduled", resp.Status)
	}
	if resp.Type != model.MeetingTypeSpecial {
		t.Errorf("type %s, want special default", resp.Type)
	}

	stored, err := mocks.meetings.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("reloading meeting: %v", err)
	}
	want := time.Date(2030, 5, 10, 20, 0, 0, 0, time.UTC)
	if !stored.Date.Equal(want) {
		t.Errorf("stored date %v, want %v", stored.Date, want)
	}
}

func TestCreateAdHocMeetingRejectsDuplicateSlot(t *testing.T) {
	svc, _, group := newMeetingFixture(t)

	req := &dto.CreateMeetingRequest{Date: "2030-05-10T20:00:00Z"}
	if _, err := svc.CreateAdHoc(context.Background(), group.GroupID, req, adminCaller()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateAdHoc(context.Background(), group.GroupID, req, adminCaller()); !errors.Is(err, ErrMeetingExists) {
		t.Fatalf("expected ErrMeetingExists, got %v", err)
	}
}

func TestCreateAdHocMeetingRejectsBadInput(t *testing.T) {
	svc, _, group := newMeetingFixture(t)

	cases := []dto.CreateMeetingRequest{
		{Date: "not-a-date"},
		{Date: "2030-05-10T20:00:00Z", StartTime: strPtr("26:00")},
		{Date: "2030-05-10T20:00:00Z", EndTime: strPtr("20:xx")},
	}
	for i, req := range cases {
		if _, err := svc.CreateAdHoc(context.Background(), group.GroupID, &req, adminCaller()); !errors.Is(err, ErrInvalidMeeting) {
			t.Errorf("case %d: expected ErrInvalidMeeting, got %v", i, err)
		}
	}
}

func TestMeetingGetDetailReconcilesSingleMeeting(t *testing.T) {
	svc, mocks, group := newMeetingFixture(t)

	past := seedMeeting(t, mocks, group.GroupID,
		time.Date(2020, 3, 5, 19, 0, 0, 0, time.UTC),
		strPtr("19:00"), nil, schedule.StatusScheduled)

	detail, err := svc.GetDetail(context.Background(), past.MeetingID, adminCaller())
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if detail.Status != schedule.StatusFinished {
		t.Errorf("rendered status %s, want finished", detail.Status)
	}

	stored, _ := mocks.meetings.GetByID(context.Background(), past.MeetingID)
	if stored.Status != schedule.StatusFinished {
		t.Errorf("stored status %s, want finished", stored.Status)
	}
}

func TestMeetingUpdateStatusCancelSticks(t *testing.T) {
	svc, mocks, group := newMeetingFixture(t)

	past := seedMeeting(t, mocks, group.GroupID,
		time.Date(2020, 3, 5, 19, 0, 0, 0, time.UTC),
		strPtr("19:00"), nil, schedule.StatusScheduled)

	resp, err := svc.UpdateStatus(context.Background(), past.MeetingID, schedule.StatusCancelled, adminCaller())
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if resp.Status != schedule.StatusCancelled {
		t.Fatalf("status %s, want cancelled", resp.Status)
	}

	// A later detail read must not resolve the cancelled meeting back to
	// finished, even though its window is long past.
	detail, err := svc.GetDetail(context.Background(), past.MeetingID, adminCaller())
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if detail.Status != schedule.StatusCancelled {
		t.Fatalf("cancelled meeting resolved to %s", detail.Status)
	}
}

func TestMeetingUpdateStatusRejectsUnknown(t *testing.T) {
	svc, mocks, group := newMeetingFixture(t)

	m := seedMeeting(t, mocks, group.GroupID,
		time.Date(2030, 3, 5, 19, 0, 0, 0, time.UTC),
		strPtr("19:00"), nil, schedule.StatusScheduled)

	if _, err := svc.UpdateStatus(context.Background(), m.MeetingID, "postponed", adminCaller()); !errors.Is(err, ErrInvalidMeeting) {
		t.Fatalf("expected ErrInvalidMeeting, got %v", err)
	}
}

func TestMeetingListByGroupFiltersRange(t *testing.T) {
	svc, mocks, group := newMeetingFixture(t)

	seedMeeting(t, mocks, group.GroupID,
		time.Date(2030, 1, 10, 19, 0, 0, 0, time.UTC), strPtr("19:00"), nil, schedule.StatusScheduled)
	seedMeeting(t, mocks, group.GroupID,
		time.Date(2030, 2, 10, 19, 0, 0, 0, time.UTC), strPtr("19:00"), nil, schedule.StatusScheduled)
	seedMeeting(t, mocks, group.GroupID,
		time.Date(2030, 3, 10, 19, 0, 0, 0, time.UTC), strPtr("19:00"), nil, schedule.StatusScheduled)

	from := "2030-02-01"
	to := "2030-02-28"
	meetings, err := svc.ListByGroup(context.Background(), group.GroupID, &from, &to, adminCaller())
	if err != nil {
		t.Fatalf("ListByGroup: %v", err)
	}
	if len(meetings) != 1 {
		t.Fatalf("expected 1 meeting in February, got %d", len(meetings))
	}
}
