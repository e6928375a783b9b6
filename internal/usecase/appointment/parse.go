package appointment

import (
	"time"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
)

// parseInstant accepts RFC3339 instants and, for callers that omit the
// offset (the calendar UI posts naive local stamps), the same layout
// interpreted in the clinic timezone.
func parseInstant(value, code, message string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, httperr.ErrBusinessMsg(code, message)
}
