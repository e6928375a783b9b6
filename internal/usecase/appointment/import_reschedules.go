package appointment

import (
	"context"
	"time"

	domain "github.com/clinicbase/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbase/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// ImportRescheduleRow is one pre-parsed ledger row. The client fields
// resolve-or-create through the registry exactly like a booking row.
type ImportRescheduleRow struct {
	ClientName    string
	ClientAge     int
	ClientGender  string
	ClientContact string
	ClientAddress string

	Prestart string
	Preend   string
	NewStart string
	NewEnd   string

	ScheduleBy string
}

type ImportReschedulesInput struct {
	Rows []ImportRescheduleRow
}

// ======================================================
// USE CASE
// ======================================================

type ImportReschedules struct {
	create *CreateAppointment
	repo   domain.Repository
}

func NewImportReschedules(
	create *CreateAppointment,
	repo domain.Repository,
) *ImportReschedules {
	return &ImportReschedules{create: create, repo: repo}
}

func (uc *ImportReschedules) Execute(
	ctx context.Context,
	in ImportReschedulesInput,
) (*ImportResult, error) {

	result := &ImportResult{Errors: []ImportRowError{}}

	for i, row := range in.Rows {
		created, err := uc.importRow(ctx, row)
		if err != nil {
			result.Errors = append(result.Errors, importRowError(i, err))
			continue
		}
		// An identical entry already on the ledger is a skip, so
		// re-importing the same sheet is idempotent.
		if created {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

func (uc *ImportReschedules) importRow(
	ctx context.Context,
	row ImportRescheduleRow,
) (bool, error) {

	client, err := uc.create.resolveClient(ctx, CreateAppointmentInput{
		ClientName:    row.ClientName,
		ClientAge:     row.ClientAge,
		ClientGender:  row.ClientGender,
		ClientContact: row.ClientContact,
		ClientAddress: row.ClientAddress,
	})
	if err != nil {
		return false, err
	}

	prestart, preend, err := uc.parseWindow(row.Prestart, "invalid_prestart", row.Preend, "invalid_preend")
	if err != nil {
		return false, err
	}
	newStart, newEnd, err := uc.parseWindow(row.NewStart, "invalid_start", row.NewEnd, "invalid_end")
	if err != nil {
		return false, err
	}

	scheduleBy := row.ScheduleBy
	if scheduleBy == "" {
		scheduleBy = "admin"
	}

	return uc.repo.UpsertReschedule(ctx, &models.Reschedule{
		ClientID:     client.ID,
		PrestartTime: prestart,
		PreendTime:   preend,
		NewStartTime: newStart,
		NewEndTime:   newEnd,
		ScheduleBy:   scheduleBy,
	})
}

func (uc *ImportReschedules) parseWindow(
	startStr, startCode, endStr, endCode string,
) (time.Time, time.Time, error) {

	start, err := parseInstant(startStr, startCode, "Invalid start date", uc.create.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseInstant(endStr, endCode, "Invalid end date", uc.create.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := domain.ValidateWindow(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
