package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
	"github.com/clinicbase/clinic-scheduler/internal/models"
)

type SchedulerGormRepository struct {
	db *gorm.DB
}

func NewSchedulerGormRepository(db *gorm.DB) *SchedulerGormRepository {
	return &SchedulerGormRepository{db: db}
}

// --------------------------------------------------
// Client registry
// --------------------------------------------------

func (r *SchedulerGormRepository) GetOrCreateClient(
	ctx context.Context,
	client *models.Client,
) (*models.Client, error) {

	existing, err := r.FindClientByNormalizedName(ctx, client.NormalizedName)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		// Lost the creation race: another booking inserted the same
		// normalized name between our lookup and insert. The winner's
		// row is the client.
		if httperr.IsUniqueViolation(err) {
			return r.FindClientByNormalizedName(ctx, client.NormalizedName)
		}
		return nil, err
	}

	return client, nil
}

func (r *SchedulerGormRepository) FindClientByNormalizedName(
	ctx context.Context,
	normalized string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("normalized_name = ?", normalized).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *SchedulerGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulerGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulerGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulerGormRepository) FindAppointmentByClientAndStart(
	ctx context.Context,
	clientID uint,
	start time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND start_time = ?", clientID, start).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulerGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulerGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// RescheduleAppointment writes the ledger entry and the updated
// appointment atomically. The ledger insert goes first so a constraint
// failure on the appointment row rolls both back.
func (r *SchedulerGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.Reschedule,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Save(ap).Error
	})
}

func (r *SchedulerGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// --------------------------------------------------
// Reschedule ledger
// --------------------------------------------------

func (r *SchedulerGormRepository) UpsertReschedule(
	ctx context.Context,
	entry *models.Reschedule,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where(
			"client_id = ? AND prestart_time = ? AND preend_time = ? AND new_start_time = ? AND new_end_time = ? AND schedule_by = ?",
			entry.ClientID,
			entry.PrestartTime,
			entry.PreendTime,
			entry.NewStartTime,
			entry.NewEndTime,
			entry.ScheduleBy,
		).
		FirstOrCreate(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
