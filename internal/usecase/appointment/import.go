package appointment

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/clinicbase/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbase/clinic-scheduler/internal/httperr"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// ImportAppointmentsInput carries rows already parsed out of a
// spreadsheet by the caller. The rows run through the exact same
// validation as the single-booking path; the only extra rule is
// duplicate-booking detection by client + start.
type ImportAppointmentsInput struct {
	Rows []CreateAppointmentInput
}

type ImportRowError struct {
	Row     int    `json:"row"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// ImportResult is shared by the appointment and ledger importers.
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors"`
}

// ======================================================
// USE CASE
// ======================================================

type ImportAppointments struct {
	create *CreateAppointment
	repo   domain.Repository
}

func NewImportAppointments(
	create *CreateAppointment,
	repo domain.Repository,
) *ImportAppointments {
	return &ImportAppointments{create: create, repo: repo}
}

func (uc *ImportAppointments) Execute(
	ctx context.Context,
	in ImportAppointmentsInput,
) (*ImportResult, error) {

	result := &ImportResult{Errors: []ImportRowError{}}

	for i, row := range in.Rows {
		if uc.isDuplicate(ctx, row) {
			result.Skipped++
			continue
		}

		if _, err := uc.create.Execute(ctx, row); err != nil {
			// A start-slot conflict inside the batch is a duplicate,
			// not a failure.
			if httperr.IsBusiness(err, "time_slot_taken") {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, importRowError(i, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

// isDuplicate reports whether the row's client already holds a booking
// at exactly the row's start instant.
func (uc *ImportAppointments) isDuplicate(
	ctx context.Context,
	row CreateAppointmentInput,
) bool {
	client, err := uc.create.resolveClient(ctx, row)
	if err != nil {
		// Row-level validation surfaces in the create path.
		return false
	}
	start, err := parseInstant(row.Start, "invalid_start", "Invalid start date", uc.create.loc)
	if err != nil {
		return false
	}
	_, err = uc.repo.FindAppointmentByClientAndStart(ctx, client.ID, start)
	return err == nil
}

func importRowError(row int, err error) ImportRowError {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		return ImportRowError{Row: row, Code: be.Code, Message: msg}
	}
	return ImportRowError{Row: row, Code: "server_error", Message: fmt.Sprintf("row %d failed", row)}
}
