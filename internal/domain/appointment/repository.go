package appointment

import (
	"context"
	"time"

	"github.com/clinicbase/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Client registry --------

	// GetOrCreateClient resolves by normalized name, creating the
	// record when no match exists. A lost creation race against a
	// concurrent booking must resolve to the winner's row, never an
	// error.
	GetOrCreateClient(
		ctx context.Context,
		client *models.Client,
	) (*models.Client, error)

	// FindClientByNormalizedName resolves an existing registry entry.
	// Returns the storage layer's missing-row error when no match exists.
	FindClientByNormalizedName(
		ctx context.Context,
		normalized string,
	) (*models.Client, error)

	// -------- Appointment --------

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	FindAppointmentByClientAndStart(
		ctx context.Context,
		clientID uint,
		start time.Time,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleAppointment persists the ledger entry and the mutated
	// appointment in one transaction. Neither write survives alone.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		entry *models.Reschedule,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Reschedule ledger --------

	// UpsertReschedule inserts the entry unless an identical one (same
	// client, both windows and actor) already exists. Reports whether a
	// row was created, which keeps ledger imports idempotent.
	UpsertReschedule(
		ctx context.Context,
		entry *models.Reschedule,
	) (bool, error)
}
