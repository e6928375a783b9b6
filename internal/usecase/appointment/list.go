package appointment

import (
	"context"
	"time"

	domain "github.com/clinicbase/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbase/clinic-scheduler/internal/httperr"
	"github.com/clinicbase/clinic-scheduler/internal/models"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo, loc: loc}
}

// Execute returns the month's appointments over
// [first-of-month, first-of-next-month) in the clinic timezone.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]models.Appointment, error) {

	if year < 2000 || year > 2100 {
		return nil, httperr.ErrBusinessMsg("invalid_year", "Invalid year value.")
	}
	if month < 1 || month > 12 {
		return nil, httperr.ErrBusinessMsg("invalid_month", "Invalid month value.")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, 0)

	return uc.repo.ListAppointmentsForPeriod(ctx, start, end)
}

type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo, loc: loc}
}

// Execute returns the day's appointments, start ascending. The range is
// [start-of-day, start-of-next-day) in the clinic timezone.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	dateStr string,
) ([]models.Appointment, error) {

	if dateStr == "" {
		return nil, httperr.ErrBusinessMsg("missing_date", "Date query parameter is required.")
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusinessMsg("invalid_date", "Invalid date format. Please use YYYY-MM-DD.")
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 0, 1)

	return uc.repo.ListAppointmentsForPeriod(ctx, start, end)
}
