package appointment

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/clinicbase/clinic-scheduler/internal/models"
)

// --------------------------------------------------
// In-memory repository
// --------------------------------------------------

type fakeRepo struct {
	mu sync.Mutex

	clients      []*models.Client
	appointments map[uint]*models.Appointment
	reschedules  []*models.Reschedule

	nextClientID uint
	nextApID     uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		appointments: make(map[uint]*models.Appointment),
		nextClientID: 1,
		nextApID:     1,
	}
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, client *models.Client) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.NormalizedName == client.NormalizedName {
			return c, nil
		}
	}
	client.ID = r.nextClientID
	r.nextClientID++
	r.clients = append(r.clients, client)
	return client, nil
}

func (r *fakeRepo) FindClientByNormalizedName(_ context.Context, normalized string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.NormalizedName == normalized {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Appointment, 0, len(r.appointments))
	for _, ap := range r.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindAppointmentByClientAndStart(_ context.Context, clientID uint, start time.Time) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ClientID == clientID && ap.StartTime.Equal(start) {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.StartTime.Equal(ap.StartTime) {
			return gorm.ErrDuplicatedKey
		}
	}
	ap.ID = r.nextApID
	r.nextApID++
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) RescheduleAppointment(_ context.Context, ap *models.Appointment, entry *models.Reschedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *entry
	r.reschedules = append(r.reschedules, &cp)
	apCp := *ap
	r.appointments[ap.ID] = &apCp
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.appointments, id)
	return nil
}

func (r *fakeRepo) UpsertReschedule(_ context.Context, entry *models.Reschedule) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reschedules {
		if existing.ClientID == entry.ClientID &&
			existing.PrestartTime.Equal(entry.PrestartTime) &&
			existing.PreendTime.Equal(entry.PreendTime) &&
			existing.NewStartTime.Equal(entry.NewStartTime) &&
			existing.NewEndTime.Equal(entry.NewEndTime) &&
			existing.ScheduleBy == entry.ScheduleBy {
			return false, nil
		}
	}
	cp := *entry
	r.reschedules = append(r.reschedules, &cp)
	return true, nil
}

func (r *fakeRepo) stored(id uint) *models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointments[id]
}

// --------------------------------------------------
// Capturing publisher
// --------------------------------------------------

type capturedEvent struct {
	Room    string
	Event   string
	Payload any
}

type capturePub struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (p *capturePub) Publish(room string, event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{Room: room, Event: event, Payload: payload})
}

func (p *capturePub) all() []capturedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]capturedEvent(nil), p.events...)
}

func (p *capturePub) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
