package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
	"github.com/clinicbase/clinic-scheduler/internal/realtime"
)

func newCreateFixture() (*CreateAppointment, *fakeRepo, *capturePub) {
	repo := newFakeRepo()
	pub := &capturePub{}
	uc := NewCreateAppointment(repo, pub, time.UTC, "male")
	return uc, repo, pub
}

func validCreateInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientName: "Jane Smith",
		ClientAge:  32,
		Start:      "2025-04-15T14:00:00",
		End:        "2025-04-15T15:00:00",
		Platform:   "website",
		Type:       "consultation",
	}
}

func TestCreateAppointment(t *testing.T) {
	uc, repo, pub := newCreateFixture()

	ap, err := uc.Execute(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, "Jane Smith", ap.Client.Name)
	assert.Equal(t, "jane_smith", ap.Client.NormalizedName)
	assert.Equal(t, "male", ap.Client.Gender)

	// Derived calendar date is the date component of start.
	assert.Equal(t, "2025-04-15", ap.AppointmentDate.Format("2006-01-02"))
	require.Len(t, repo.clients, 1)

	// Day room and month room each get one created event.
	events := pub.all()
	require.Len(t, events, 2)
	assert.Equal(t, "appointments:2025-04-15", events[0].Room)
	assert.Equal(t, realtime.EventAppointmentCreated, events[0].Event)
	assert.Equal(t, "appointments:2025-04", events[1].Room)
	assert.Equal(t, realtime.EventAppointmentCreated, events[1].Event)
}

func TestCreateAppointmentDedupsClientByNormalizedName(t *testing.T) {
	uc, repo, _ := newCreateFixture()

	first, err := uc.Execute(context.Background(), validCreateInput())
	require.NoError(t, err)

	in := validCreateInput()
	in.ClientName = "  jane   SMITH! "
	in.ClientAge = 99 // ignored: first write wins
	in.Start = "2025-04-16T14:00:00"
	in.End = "2025-04-16T15:00:00"

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ClientID, second.ClientID)
	assert.Len(t, repo.clients, 1)
	assert.Equal(t, 32, repo.clients[0].Age)
}

func TestCreateAppointmentRepeatBookingOmitsClientFields(t *testing.T) {
	uc, repo, _ := newCreateFixture()

	first, err := uc.Execute(context.Background(), validCreateInput())
	require.NoError(t, err)

	// A repeat booking carries the name only; age and contact checks
	// apply to brand-new clients, not lookups.
	in := validCreateInput()
	in.ClientAge = 0
	in.ClientContact = "not-a-number"
	in.Start = "2025-04-17T14:00:00"
	in.End = "2025-04-17T15:00:00"

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.ClientID, second.ClientID)
	assert.Len(t, repo.clients, 1)
}

func TestCreateAppointmentRejectsInvalidContactForNewClient(t *testing.T) {
	uc, repo, _ := newCreateFixture()

	in := validCreateInput()
	in.ClientContact = "not-a-number"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_contact"))
	assert.Empty(t, repo.clients)

	in.ClientContact = "+123456789"
	_, err = uc.Execute(context.Background(), in)
	require.NoError(t, err)
}

func TestCreateAppointmentRejectsMissingClientName(t *testing.T) {
	uc, _, pub := newCreateFixture()

	in := validCreateInput()
	in.ClientName = "  !!! "

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "missing_client"))
	assert.Empty(t, pub.all())
}

func TestCreateAppointmentRejectsAgeOutOfRange(t *testing.T) {
	uc, _, _ := newCreateFixture()

	for _, age := range []int{0, -3, 121} {
		in := validCreateInput()
		in.ClientAge = age
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "invalid_age"), "age %d", age)
	}
}

func TestCreateAppointmentRejectsInvalidWindow(t *testing.T) {
	uc, repo, pub := newCreateFixture()

	// end before start
	in := validCreateInput()
	in.Start = "2025-04-16T10:00:00"
	in.End = "2025-04-16T09:00:00"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))

	// start == end is rejected too
	in.End = in.Start
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_time_range"))

	assert.Empty(t, repo.appointments)
	assert.Empty(t, pub.all())
}

func TestCreateAppointmentRejectsInvalidEnums(t *testing.T) {
	uc, _, _ := newCreateFixture()

	in := validCreateInput()
	in.Platform = "carrier-pigeon"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_platform"))

	in = validCreateInput()
	in.Type = "follow-up" // legacy value, no longer accepted
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_type"))
}

func TestCreateAppointmentStartSlotConflict(t *testing.T) {
	uc, _, pub := newCreateFixture()

	_, err := uc.Execute(context.Background(), validCreateInput())
	require.NoError(t, err)
	pub.reset()

	in := validCreateInput()
	in.ClientName = "Someone Else"
	in.End = "2025-04-15T16:00:00"

	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "time_slot_taken"))
	assert.Empty(t, pub.all())
}

func TestCreateAppointmentAcceptsRFC3339(t *testing.T) {
	uc, _, _ := newCreateFixture()

	in := validCreateInput()
	in.Start = "2025-09-20T10:00:00Z"
	in.End = "2025-09-20T11:00:00Z"

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-20", ap.AppointmentDate.Format("2006-01-02"))
}
