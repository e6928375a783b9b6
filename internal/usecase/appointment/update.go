package appointment

import (
	"context"
	"time"

	domain "github.com/clinicbase/clinic-scheduler/internal/domain/appointment"
	"github.com/clinicbase/clinic-scheduler/internal/httperr"
	"github.com/clinicbase/clinic-scheduler/internal/metrics"
	"github.com/clinicbase/clinic-scheduler/internal/models"
	"github.com/clinicbase/clinic-scheduler/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

// Pointer fields distinguish "omitted" from "supplied": an omitted
// start or end reuses the stored value.
type UpdateAppointmentInput struct {
	ID uint

	Status   *string
	Start    *string
	End      *string
	Platform *string
	Type     *string

	// Actor attribution for the ledger: body value wins, then the
	// authenticated username, then "admin".
	ScheduleBy *string
	Actor      string
}

type UpdateAppointmentResult struct {
	Appointment *models.Appointment
	Rescheduled bool
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo domain.Repository
	pub  realtime.Publisher
	loc  *time.Location
}

func NewUpdateAppointment(
	repo domain.Repository,
	pub realtime.Publisher,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, pub: pub, loc: loc}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*UpdateAppointmentResult, error) {

	// --------------------------------------------------
	// Resolve current record first
	// --------------------------------------------------
	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("appointment_not_found", "Appointment not found")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Validate everything before any mutation
	// --------------------------------------------------
	var status domain.Status
	if in.Status != nil {
		status, err = domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
	}

	var platform domain.Platform
	if in.Platform != nil {
		platform, err = domain.ParsePlatform(*in.Platform)
		if err != nil {
			return nil, err
		}
	}

	var apType domain.Type
	if in.Type != nil {
		apType, err = domain.ParseType(*in.Type)
		if err != nil {
			return nil, err
		}
	}

	newStart := ap.StartTime
	if in.Start != nil {
		newStart, err = parseInstant(*in.Start, "invalid_start", "Invalid start date", uc.loc)
		if err != nil {
			return nil, err
		}
	}

	newEnd := ap.EndTime
	if in.End != nil {
		newEnd, err = parseInstant(*in.End, "invalid_end", "Invalid end date", uc.loc)
		if err != nil {
			return nil, err
		}
	}

	if err := domain.ValidateWindow(newStart, newEnd); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Reschedule detection: exact instant comparison
	// --------------------------------------------------
	isReschedule := domain.IsReschedule(ap.StartTime, ap.EndTime, newStart, newEnd)

	var entry *models.Reschedule
	if isReschedule {
		// Ledger entry is built from the pre-update window.
		entry = &models.Reschedule{
			ClientID:      ap.ClientID,
			AppointmentID: ap.ID,
			PrestartTime:  ap.StartTime,
			PreendTime:    ap.EndTime,
			NewStartTime:  newStart,
			NewEndTime:    newEnd,
			ScheduleBy:    uc.resolveActor(in),
		}

		// Auto-transition unless the caller supplied a status.
		if in.Status == nil {
			ap.Status = string(domain.StatusRescheduled)
		}
	}

	// --------------------------------------------------
	// Apply validated fields
	// --------------------------------------------------
	if in.Status != nil {
		ap.Status = string(status)
	}
	if in.Platform != nil {
		ap.Platform = string(platform)
	}
	if in.Type != nil {
		ap.Type = string(apType)
	}
	ap.StartTime = newStart
	ap.EndTime = newEnd
	if in.Start != nil {
		ap.AppointmentDate = domain.DeriveDate(newStart, uc.loc)
	}

	// --------------------------------------------------
	// Persist: ledger entry and appointment share one transaction
	// --------------------------------------------------
	if isReschedule {
		err = uc.repo.RescheduleAppointment(ctx, ap, entry)
	} else {
		err = uc.repo.UpdateAppointment(ctx, ap)
	}
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusinessMsg("time_slot_taken", "An appointment already occupies this start time")
		}
		return nil, err
	}

	if isReschedule {
		metrics.Reschedules.Inc()
	}

	// --------------------------------------------------
	// Fan-out: rooms of the new calendar date
	// --------------------------------------------------
	view := ap.View()
	uc.pub.Publish(realtime.Room(domain.DateKey(newStart, uc.loc)), realtime.EventAppointmentUpdated, view)
	uc.pub.Publish(realtime.Room(domain.MonthKey(newStart, uc.loc)), realtime.EventAppointmentUpdated, view)

	return &UpdateAppointmentResult{Appointment: ap, Rescheduled: isReschedule}, nil
}

func (uc *UpdateAppointment) resolveActor(in UpdateAppointmentInput) string {
	if in.ScheduleBy != nil && *in.ScheduleBy != "" {
		return *in.ScheduleBy
	}
	if in.Actor != "" {
		return in.Actor
	}
	return "admin"
}
