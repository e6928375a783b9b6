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

func TestDeleteAppointmentNotifiesDayRoomOnly(t *testing.T) {
	repo := newFakeRepo()
	pub := &capturePub{}

	createUC := NewCreateAppointment(repo, pub, time.UTC, "male")
	in := validCreateInput()
	in.Start = "2025-04-16T09:00:00"
	in.End = "2025-04-16T10:00:00"
	ap, err := createUC.Execute(context.Background(), in)
	require.NoError(t, err)
	pub.reset()

	uc := NewDeleteAppointment(repo, pub, time.UTC)
	snapshot, err := uc.Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, snapshot.ID)

	// One event, day room only, carrying the id.
	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, "appointments:2025-04-16", events[0].Room)
	assert.Equal(t, realtime.EventAppointmentDeleted, events[0].Event)
	assert.Equal(t, map[string]any{"id": ap.ID}, events[0].Payload)

	// The record is gone.
	getUC := NewGetAppointment(repo)
	_, err = getUC.Execute(context.Background(), ap.ID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestDeleteAppointmentNotFound(t *testing.T) {
	uc := NewDeleteAppointment(newFakeRepo(), &capturePub{}, time.UTC)

	_, err := uc.Execute(context.Background(), 42)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
