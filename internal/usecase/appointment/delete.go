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

type DeleteAppointment struct {
	repo domain.Repository
	pub  realtime.Publisher
	loc  *time.Location
}

func NewDeleteAppointment(
	repo domain.Repository,
	pub realtime.Publisher,
	loc *time.Location,
) *DeleteAppointment {
	return &DeleteAppointment{repo: repo, pub: pub, loc: loc}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	// The date key must be captured before the row is gone: it
	// addresses the deleted event.
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("appointment_not_found", "Appointment not found")
		}
		return nil, err
	}
	dateKey := domain.DateKey(ap.StartTime, uc.loc)

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return nil, err
	}

	metrics.AppointmentsDeleted.Inc()

	// Deletes notify the day room only.
	uc.pub.Publish(realtime.Room(dateKey), realtime.EventAppointmentDeleted, map[string]any{"id": ap.ID})

	return ap, nil
}
