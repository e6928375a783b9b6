package models

import "time"

// Reschedule is an immutable ledger entry recording one time-window
// change to an appointment. Written only when start or end actually
// differ from the stored values, never updated afterwards.
type Reschedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Reference only. Deleting an appointment keeps its ledger history.
	AppointmentID uint `json:"appointment_id"`

	PrestartTime time.Time `json:"prestart"`
	PreendTime   time.Time `json:"preend"`

	NewStartTime time.Time `json:"new_start"`
	NewEndTime   time.Time `json:"new_end"`

	ScheduleBy string `gorm:"size:100;not null" json:"scheduleBy"`

	CreatedAt time.Time `json:"created_at"`
}

type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RescheduleView is the joined response shape: nested pre/post windows
// plus a client summary, matching what the calendar UI consumes.
type RescheduleView struct {
	ID            uint          `json:"id"`
	Client        ClientSummary `json:"client"`
	AppointmentID uint          `json:"appointment_id"`
	Preschedule   Window        `json:"preschedule"`
	Reschedule    Window        `json:"reschedule"`
	ScheduleBy    string        `json:"scheduleBy"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (r *Reschedule) View() RescheduleView {
	return RescheduleView{
		ID:            r.ID,
		Client:        r.Client.Summary(),
		AppointmentID: r.AppointmentID,
		Preschedule:   Window{Start: r.PrestartTime, End: r.PreendTime},
		Reschedule:    Window{Start: r.NewStartTime, End: r.NewEndTime},
		ScheduleBy:    r.ScheduleBy,
		CreatedAt:     r.CreatedAt,
	}
}
