package realtime

import (
	"github.com/clinicbase/clinic-scheduler/internal/metrics"
)

// Room keys are "appointments:YYYY-MM-DD" for a calendar day and
// "appointments:YYYY-MM" for a month.
const roomPrefix = "appointments:"

func Room(key string) string {
	return roomPrefix + key
}

// Lifecycle events emitted by the scheduling usecases.
const (
	EventAppointmentCreated = "appointment:created"
	EventAppointmentUpdated = "appointment:updated"
	EventAppointmentDeleted = "appointment:deleted"
)

// Client-initiated join requests.
const (
	EventJoinDate  = "join-appointments-date"
	EventJoinMonth = "join-appointments-month"
)

// Publisher is the fan-out handle injected into the scheduling
// usecases. Delivery is fire-and-forget: Publish never blocks and never
// reports subscriber failures.
type Publisher interface {
	Publish(room string, event string, payload any)
}

// Message is the wire envelope in both directions.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// NopPublisher drops everything. Used where a usecase is exercised
// without a running hub.
type NopPublisher struct{}

func (NopPublisher) Publish(string, string, any) {}

var _ Publisher = NopPublisher{}
var _ Publisher = (*Hub)(nil)

func countBroadcast(event string) {
	metrics.EventsBroadcast.WithLabelValues(event).Inc()
}
