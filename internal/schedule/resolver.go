package schedule

import "time"

// Meeting lifecycle statuses.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
	StatusCancelled  = "cancelled"
)

// DefaultMeetingDuration applies when a meeting has no end time.
const DefaultMeetingDuration = 2 * time.Hour

// Window is the slice of a meeting the resolver needs: its time window and
// whether anyone has been marked present.
type Window struct {
	Date       time.Time
	StartTime  string // "HH:MM"; empty means midnight
	EndTime    string // "HH:MM"; empty means StartTime + DefaultMeetingDuration
	HasPresent bool
}

// Resolve derives the correct lifecycle status of a meeting at the given
// instant. It must never be called for a cancelled meeting; cancellation is
// terminal and handled by the caller.
//
// A meeting inside its live window stays scheduled until someone is marked
// present, so an empty room is not reported as in progress. A meeting past
// its window is finished unconditionally, attendance or not.
func Resolve(w Window, now time.Time) string {
	start := atClock(w.Date, w.StartTime)

	var end time.Time
	if _, _, ok := ParseClock(w.EndTime); ok {
		end = atClock(w.Date, w.EndTime)
	} else {
		end = start.Add(DefaultMeetingDuration)
	}

	switch {
	case now.Before(start):
		return StatusScheduled
	case now.After(end):
		return StatusFinished
	case w.HasPresent:
		return StatusInProgress
	default:
		return StatusScheduled
	}
}
