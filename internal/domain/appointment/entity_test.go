package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
)

func TestValidateWindow(t *testing.T) {
	base := time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateWindow(base, base.Add(time.Hour)))
	assert.NoError(t, ValidateWindow(base, base.Add(time.Second)))

	err := ValidateWindow(base, base)
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))

	err = ValidateWindow(base.Add(time.Hour), base)
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))
}

func TestIsReschedule(t *testing.T) {
	start := time.Date(2025, 4, 15, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	assert.False(t, IsReschedule(start, end, start, end))
	assert.True(t, IsReschedule(start, end, start.Add(time.Minute), end))
	assert.True(t, IsReschedule(start, end, start, end.Add(time.Minute)))

	// Equal instants in different locations are still the same instant.
	est, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.False(t, IsReschedule(start, end, start.In(est), end.In(est)))
}

func TestDeriveDate(t *testing.T) {
	start := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)

	date := DeriveDate(start, time.UTC)
	assert.Equal(t, "2025-09-20", date.Format("2006-01-02"))
	assert.Equal(t, 0, date.Hour())

	// A late-evening UTC instant lands on the next day further east.
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	late := time.Date(2025, 9, 20, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-09-21", DeriveDate(late, tokyo).Format("2006-01-02"))
}

func TestRoomKeys(t *testing.T) {
	start := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-09-20", DateKey(start, time.UTC))
	assert.Equal(t, "2025-09", MonthKey(start, time.UTC))
}
