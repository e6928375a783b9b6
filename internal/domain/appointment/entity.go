package appointment

import (
	"time"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
)

// ===============================
// Time-window rules
// ===============================

// ValidateWindow enforces the schedule ordering invariant:
// start must strictly precede end (start == end is rejected).
func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return httperr.ErrBusinessMsg("invalid_time_range", "Start time must be before end time")
	}
	return nil
}

// IsReschedule reports whether the resolved new window differs from the
// stored one. Exact instant comparison: a platform-only update is never
// a reschedule, a one-minute shift always is.
func IsReschedule(priorStart, priorEnd, newStart, newEnd time.Time) bool {
	return !newStart.Equal(priorStart) || !newEnd.Equal(priorEnd)
}

// ===============================
// Derived calendar date
// ===============================

// DeriveDate projects a start instant onto its date-only value in the
// clinic timezone. Stored redundantly on the appointment and recomputed
// whenever start changes.
func DeriveDate(start time.Time, loc *time.Location) time.Time {
	y, m, d := start.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DateKey is the day-room key for an instant, e.g. "2025-09-20".
func DateKey(start time.Time, loc *time.Location) string {
	return start.In(loc).Format("2006-01-02")
}

// MonthKey is the month-room key for an instant, e.g. "2025-09".
func MonthKey(start time.Time, loc *time.Location) string {
	return start.In(loc).Format("2006-01")
}
