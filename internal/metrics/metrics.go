package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_appointments_created_total",
		Help: "Appointments booked through the API or import path.",
	})

	AppointmentsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_appointments_deleted_total",
		Help: "Appointments deleted.",
	})

	Reschedules = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_reschedules_total",
		Help: "Ledger entries written for time-window changes.",
	})

	EventsBroadcast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_realtime_events_total",
		Help: "Realtime events accepted for broadcast, by event name.",
	}, []string{"event"})
)
