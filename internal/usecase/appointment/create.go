package appointment

import (
	"context"
	"time"

	domain "github.com/clinicbase/clinic-scheduler/internal/domain/appointment"
	domclient "github.com/clinicbase/clinic-scheduler/internal/domain/client"
	"github.com/clinicbase/clinic-scheduler/internal/httperr"
	"github.com/clinicbase/clinic-scheduler/internal/metrics"
	"github.com/clinicbase/clinic-scheduler/internal/models"
	"github.com/clinicbase/clinic-scheduler/internal/realtime"
	"github.com/clinicbase/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName    string
	ClientAge     int
	ClientGender  string
	ClientContact string
	ClientAddress string

	Start string
	End   string

	Platform string
	Type     string

	Category    string
	SubCategory string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo          domain.Repository
	pub           realtime.Publisher
	loc           *time.Location
	defaultGender string
}

func NewCreateAppointment(
	repo domain.Repository,
	pub realtime.Publisher,
	loc *time.Location,
	defaultGender string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:          repo,
		pub:           pub,
		loc:           loc,
		defaultGender: defaultGender,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Client registry: resolve-or-create by normalized name
	// --------------------------------------------------
	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Time window
	// --------------------------------------------------
	start, end, err := uc.parseWindow(in.Start, in.End)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Enumerations
	// --------------------------------------------------
	platform, err := domain.ParsePlatform(in.Platform)
	if err != nil {
		return nil, err
	}
	apType, err := domain.ParseType(in.Type)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Persist (start slot is a unique key)
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:        client.ID,
		Client:          *client,
		StartTime:       start,
		EndTime:         end,
		AppointmentDate: domain.DeriveDate(start, uc.loc),
		Platform:        string(platform),
		Type:            string(apType),
		Status:          string(domain.InitialStatus()),
		Category:        in.Category,
		SubCategory:     in.SubCategory,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusinessMsg("time_slot_taken", "An appointment already occupies this start time")
		}
		return nil, err
	}
	ap.Client = *client

	metrics.AppointmentsCreated.Inc()

	// --------------------------------------------------
	// Fan-out: day room and month room of the new date
	// --------------------------------------------------
	view := ap.View()
	uc.pub.Publish(realtime.Room(domain.DateKey(start, uc.loc)), realtime.EventAppointmentCreated, view)
	uc.pub.Publish(realtime.Room(domain.MonthKey(start, uc.loc)), realtime.EventAppointmentCreated, view)

	return ap, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Client, error) {

	normalized := domclient.Normalize(in.ClientName)
	if normalized == "" {
		return nil, httperr.ErrBusinessMsg("missing_client", "Client data is missing or invalid.")
	}

	// An existing registry entry wins as-is: repeat bookings may omit
	// age and the rest of the client fields entirely.
	existing, err := uc.repo.FindClientByNormalizedName(ctx, normalized)
	if err == nil {
		return existing, nil
	}
	if !httperr.IsNotFound(err) {
		return nil, err
	}

	// Brand-new client: full validation applies.
	if err := domclient.ValidateAge(in.ClientAge); err != nil {
		return nil, err
	}
	if in.ClientContact != "" && !validators.IsValidContact(in.ClientContact) {
		return nil, httperr.ErrBusinessMsg("invalid_contact", "Invalid phone number")
	}

	gender := in.ClientGender
	if gender == "" {
		gender = uc.defaultGender
	}

	return uc.repo.GetOrCreateClient(ctx, &models.Client{
		Name:           in.ClientName,
		NormalizedName: normalized,
		Age:            in.ClientAge,
		Gender:         gender,
		Contact:        in.ClientContact,
		Address:        in.ClientAddress,
	})
}

func (uc *CreateAppointment) parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseInstant(startStr, "invalid_start", "Invalid start date", uc.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseInstant(endStr, "invalid_end", "Invalid end date", uc.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if err := domain.ValidateWindow(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
