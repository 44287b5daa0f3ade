package schedule

import (
	"testing"
	"time"
)

func meetingAt(d time.Time, start, end string, present bool) Window {
	return Window{Date: d, StartTime: start, EndTime: end, HasPresent: present}
}

func TestResolve_BeforeWindow(t *testing.T) {
	day := date(2024, time.June, 5, 19, 0)
	w := meetingAt(day, "19:00", "21:00", true)

	now := date(2024, time.June, 5, 18, 59)
	if got := Resolve(w, now); got != StatusScheduled {
		t.Errorf("before window: got %s, want %s", got, StatusScheduled)
	}
}

func TestResolve_InWindowWithPresence(t *testing.T) {
	day := date(2024, time.June, 5, 19, 0)
	w := meetingAt(day, "19:00", "21:00", true)

	now := date(2024, time.June, 5, 19, 30)
	if got := Resolve(w, now); got != StatusInProgress {
		t.Errorf("in window with presence: got %s, want %s", got, StatusInProgress)
	}
}

func TestResolve_InWindowEmptyRoomStaysScheduled(t *testing.T) {
	day := date(2024, time.June, 5, 19, 0)
	w := meetingAt(day, "19:00", "21:00", false)

	now := date(2024, time.June, 5, 19, 30)
	if got := Resolve(w, now); got != StatusScheduled {
		t.Errorf("in window without presence: got %s, want %s", got, StatusScheduled)
	}
}

func TestResolve_PastWindowAlwaysFinished(t *testing.T) {
	day := date(2024, time.June, 4, 19, 0)
	now := date(2024, time.June, 5, 12, 0)

	for _, present := range []bool{true, false} {
		w := meetingAt(day, "19:00", "21:00", present)
		if got := Resolve(w, now); got != StatusFinished {
			t.Errorf("past window (present=%v): got %s, want %s", present, got, StatusFinished)
		}
	}
}

func TestResolve_DefaultDurationTwoHours(t *testing.T) {
	day := date(2024, time.June, 5, 19, 0)
	w := meetingAt(day, "19:00", "", false)

	// 20:59 is still inside the implicit two-hour window.
	if got := Resolve(w, date(2024, time.June, 5, 20, 59)); got != StatusScheduled {
		t.Errorf("inside default window: got %s, want %s", got, StatusScheduled)
	}
	// 21:01 is past it.
	if got := Resolve(w, date(2024, time.June, 5, 21, 1)); got != StatusFinished {
		t.Errorf("past default window: got %s, want %s", got, StatusFinished)
	}
}

func TestResolve_MissingStartTimeMeansMidnight(t *testing.T) {
	day := date(2024, time.June, 5, 0, 0)
	w := meetingAt(day, "", "", false)

	if got := Resolve(w, date(2024, time.June, 5, 1, 0)); got != StatusScheduled {
		t.Errorf("inside midnight window: got %s, want %s", got, StatusScheduled)
	}
	if got := Resolve(w, date(2024, time.June, 5, 3, 0)); got != StatusFinished {
		t.Errorf("past midnight window: got %s, want %s", got, StatusFinished)
	}
}

func TestResolve_WindowBoundsAreInclusive(t *testing.T) {
	day := date(2024, time.June, 5, 19, 0)
	w := meetingAt(day, "19:00", "21:00", true)

	if got := Resolve(w, date(2024, time.June, 5, 19, 0)); got != StatusInProgress {
		t.Errorf("at window start: got %s, want %s", got, StatusInProgress)
	}
	if got := Resolve(w, date(2024, time.June, 5, 21, 0)); got != StatusInProgress {
		t.Errorf("at window end: got %s, want %s", got, StatusInProgress)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	day := date(2024, time.June, 5, 19, 0)
	w := meetingAt(day, "19:00", "21:00", true)
	now := date(2024, time.June, 5, 20, 0)

	first := Resolve(w, now)
	for i := 0; i < 5; i++ {
		if got := Resolve(w, now); got != first {
			t.Fatalf("resolve is not idempotent: run %d got %s, first got %s", i, got, first)
		}
	}
}

func TestResolve_StatusNeverRegresses(t *testing.T) {
	day := date(2024, time.June, 5, 19, 0)
	w := meetingAt(day, "19:00", "21:00", true)

	rank := map[string]int{StatusScheduled: 0, StatusInProgress: 1, StatusFinished: 2}

	prev := -1
	for now := date(2024, time.June, 5, 18, 0); now.Before(date(2024, time.June, 5, 22, 0)); now = now.Add(5 * time.Minute) {
		got := Resolve(w, now)
		if rank[got] < prev {
			t.Fatalf("status regressed to %s at %v", got, now)
		}
		prev = rank[got]
	}
}
