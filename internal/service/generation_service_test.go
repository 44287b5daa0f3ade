package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"cellhub/backend/internal/model"
	"cellhub/backend/internal/schedule"
)

func seedScheduledGroup(t *testing.T, mocks *testRepos, name, frequency, day, clock string, anchor time.Time) *model.Group {
	t.Helper()
	group := &model.Group{
		MinistryID:       "ministry-1",
		Name:             name,
		MeetingFrequency: &frequency,
		MeetingDay:       &day,
		MeetingTime:      &clock,
		MeetingStartDate: &anchor,
	}
	if err := mocks.groups.Create(context.Background(), group); err != nil {
		t.Fatalf("seeding group: %v", err)
	}
	return group
}

func TestGenerateUpcomingCreatesProjectedMeetings(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGenerationService(repo, zap.NewNop())

	// Weekly Thursday 18:30, anchored on Monday 2024-01-01. The first
	// instance lands on Thursday 2024-01-04.
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	group := seedScheduledGroup(t, mocks, "North", "weekly", "thursday", "18:30", anchor)

	report, err := svc.GenerateUpcoming(context.Background(), 3)
	if err != nil {
		t.Fatalf("GenerateUpcoming: %v", err)
	}
	created := report.Created[group.GroupID]
	if created == 0 {
		t.Fatal("expected meetings for the scheduled group")
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", report.Warnings)
	}

	meetings, _ := mocks.meetings.ListByGroup(context.Background(), group.GroupID, nil, nil)
	if len(meetings) != created {
		t.Fatalf("reported %d created, found %d stored", created, len(meetings))
	}

	first := meetings[0]
	want := time.Date(2024, 1, 4, 18, 30, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Errorf("first meeting at %v, want %v", first.Date, want)
	}
	if first.Status != schedule.StatusScheduled {
		t.Errorf("new meeting status %s, want scheduled", first.Status)
	}
	if first.Type != model.MeetingTypeRegular {
		t.Errorf("new meeting type %s, want regular", first.Type)
	}
	if first.StartTime == nil || *first.StartTime != "18:30" {
		t.Errorf("new meeting start time %v, want 18:30", first.StartTime)
	}

	// Thursdays, one interval apart.
	for i, m := range meetings {
		if m.Date.Weekday() != time.Thursday {
			t.Errorf("meeting %d on %v, want Thursday", i, m.Date.Weekday())
		}
		if i > 0 {
			if gap := m.Date.Sub(meetings[i-1].Date); gap != 7*24*time.Hour {
				t.Errorf("gap between meetings %d and %d is %v", i-1, i, gap)
			}
		}
	}
}

func TestGenerateUpcomingIsIdempotent(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGenerationService(repo, zap.NewNop())

	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	group := seedScheduledGroup(t, mocks, "North", "weekly", "thursday", "18:30", anchor)

	if _, err := svc.GenerateUpcoming(context.Background(), 3); err != nil {
		t.Fatalf("first run: %v", err)
	}
	after, _ := mocks.meetings.ListByGroup(context.Background(), group.GroupID, nil, nil)

	report, err := svc.GenerateUpcoming(context.Background(), 3)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if _, ok := report.Created[group.GroupID]; ok {
		t.Fatalf("second run reported creations: %v", report.Created)
	}

	again, _ := mocks.meetings.ListByGroup(context.Background(), group.GroupID, nil, nil)
	if len(again) != len(after) {
		t.Fatalf("second run changed meeting count: %d -> %d", len(after), len(again))
	}
}

func TestGenerateUpcomingSkipsPartiallyConfiguredGroups(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGenerationService(repo, zap.NewNop())

	frequency := "weekly"
	day := "thursday"
	// No time or start date: not eligible.
	partial := &model.Group{
		MinistryID:       "ministry-1",
		Name:             "Partial",
		MeetingFrequency: &frequency,
		MeetingDay:       &day,
	}
	if err := mocks.groups.Create(context.Background(), partial); err != nil {
		t.Fatalf("seeding group: %v", err)
	}

	report, err := svc.GenerateUpcoming(context.Background(), 3)
	if err != nil {
		t.Fatalf("GenerateUpcoming: %v", err)
	}
	if len(report.Created) != 0 || len(report.Warnings) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}

	meetings, _ := mocks.meetings.ListByGroup(context.Background(), partial.GroupID, nil, nil)
	if len(meetings) != 0 {
		t.Fatalf("partially configured group gained %d meetings", len(meetings))
	}
}

func TestGenerateUpcomingIsolatesGroupFailures(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGenerationService(repo, zap.NewNop())

	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	broken := seedScheduledGroup(t, mocks, "Broken", "weekly", "monday", "19:00", anchor)
	healthy := seedScheduledGroup(t, mocks, "Healthy", "weekly", "thursday", "18:30", anchor)

	mocks.meetings.failListDatesFor[broken.GroupID] = true

	report, err := svc.GenerateUpcoming(context.Background(), 3)
	if err != nil {
		t.Fatalf("GenerateUpcoming: %v", err)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", report.Warnings)
	}
	if report.Created[healthy.GroupID] == 0 {
		t.Fatal("healthy group should have gained meetings despite the failure")
	}
	if _, ok := report.Created[broken.GroupID]; ok {
		t.Fatal("broken group must not report creations")
	}
}

func TestGenerateUpcomingContinuesFromLatestFutureMeeting(t *testing.T) {
	repo, mocks := newTestRepos()
	svc := NewGenerationService(repo, zap.NewNop())

	// Anchor far in the past; seed one meeting in the near future so
	// projection continues from it instead of re-walking from the anchor.
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	group := seedScheduledGroup(t, mocks, "North", "weekly", "thursday", "18:30", anchor)

	future := time.Now().AddDate(0, 0, 7)
	futureMeeting := time.Date(future.Year(), future.Month(), future.Day(), 18, 30, 0, 0, time.UTC)
	seedMeeting(t, mocks, group.GroupID, futureMeeting, strPtr("18:30"), nil, schedule.StatusScheduled)

	report, err := svc.GenerateUpcoming(context.Background(), 3)
	if err != nil {
		t.Fatalf("GenerateUpcoming: %v", err)
	}

	meetings, _ := mocks.meetings.ListByGroup(context.Background(), group.GroupID, nil, nil)
	for _, m := range meetings {
		if m.Date.Equal(futureMeeting) {
			continue
		}
		if !m.Date.After(futureMeeting) {
			t.Errorf("generated meeting %v precedes the existing future one %v", m.Date, futureMeeting)
		}
	}
	if report.Created[group.GroupID] != len(meetings)-1 {
		t.Errorf("reported %d created, stored %d new", report.Created[group.GroupID], len(meetings)-1)
	}
}
