// Package schedule implements the meeting scheduling engine: projecting
// future meeting instances from a group's recurrence rule, and deriving a
// meeting's lifecycle status from the clock and attendance. Everything here
// is pure computation; persistence is orchestrated by the service layer.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Recurrence frequencies.
const (
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// Rule is a group's recurrence configuration. All four fields are expected
// to be populated; partially configured groups are filtered out before
// projection.
type Rule struct {
	Frequency  string    // daily | weekly | biweekly | monthly
	DayOfWeek  string    // sunday … saturday; ignored for daily
	TimeOfDay  string    // "HH:MM" applied to every generated instance
	AnchorDate time.Time // first valid date of the recurrence
}

// IntervalDays maps a frequency to its stride in days. Unrecognized values
// fall back to weekly rather than failing.
func IntervalDays(frequency string) int {
	switch strings.ToLower(frequency) {
	case FrequencyDaily:
		return 1
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyMonthly:
		return 30
	default:
		return 7
	}
}

// WeekdayIndex maps a weekday name to time.Weekday numbering (Sunday = 0).
// Unknown names return -1, which projection treats as "no weekday
// constraint".
func WeekdayIndex(day string) int {
	switch strings.ToLower(day) {
	case "sunday":
		return 0
	case "monday":
		return 1
	case "tuesday":
		return 2
	case "wednesday":
		return 3
	case "thursday":
		return 4
	case "friday":
		return 5
	case "saturday":
		return 6
	default:
		return -1
	}
}

// ParseClock parses an "HH:MM" wall-clock value.
func ParseClock(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// atClock returns the given date with its time replaced by the "HH:MM"
// value, seconds zeroed. An empty or malformed clock yields midnight.
func atClock(date time.Time, clock string) time.Time {
	h, m, ok := ParseClock(clock)
	if !ok {
		h, m = 0, 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

// Project computes the meeting instances of rule between now and horizon
// that are not already materialized. The horizon is inclusive: an instance
// landing exactly on it is emitted. Existing instances are matched by exact
// timestamp. The result is in ascending chronological order.
func Project(rule Rule, existing []time.Time, now, horizon time.Time) []time.Time {
	interval := IntervalDays(rule.Frequency)

	taken := make(map[int64]struct{}, len(existing))
	var latest time.Time
	for _, t := range existing {
		taken[t.Unix()] = struct{}{}
		if t.After(latest) {
			latest = t
		}
	}

	// Seed: continue after the latest future meeting, otherwise start from
	// the anchor aligned to the configured weekday.
	var seed time.Time
	if !latest.IsZero() && latest.After(now) {
		seed = latest.AddDate(0, 0, interval)
	} else {
		seed = rule.AnchorDate
		if !strings.EqualFold(rule.Frequency, FrequencyDaily) {
			if target := WeekdayIndex(rule.DayOfWeek); target >= 0 {
				diff := target - int(seed.Weekday())
				if diff < 0 {
					diff += 7
				}
				seed = seed.AddDate(0, 0, diff)
			}
		}
	}

	var out []time.Time
	for date := seed; ; date = date.AddDate(0, 0, interval) {
		candidate := atClock(date, rule.TimeOfDay)
		if candidate.After(horizon) {
			break
		}
		if _, exists := taken[candidate.Unix()]; !exists {
			out = append(out, candidate)
		}
	}
	return out
}
