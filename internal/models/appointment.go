package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StartTime time.Time `gorm:"uniqueIndex" json:"start"`
	EndTime   time.Time `json:"end"`

	// Date-only projection of StartTime, recomputed whenever
	// StartTime changes. Kept redundantly for day/month range queries.
	AppointmentDate time.Time `gorm:"index" json:"appointmentDate"`

	Category    string `gorm:"size:50" json:"category"`
	SubCategory string `gorm:"size:50" json:"sub_category"`

	Platform string `gorm:"size:20" json:"platform"`
	Type     string `gorm:"size:20" json:"type"`
	Status   string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentView is the client-joined shape every query endpoint
// returns: appointment fields plus a flattened client summary.
type AppointmentView struct {
	ID              uint          `json:"id"`
	Client          ClientSummary `json:"client"`
	AppointmentDate time.Time     `json:"appointmentDate"`
	StartTime       time.Time     `json:"start"`
	EndTime         time.Time     `json:"end"`
	Category        string        `json:"category,omitempty"`
	SubCategory     string        `json:"sub_category,omitempty"`
	Platform        string        `json:"platform"`
	Type            string        `json:"type"`
	Status          string        `json:"status"`
	Notes           string        `json:"notes"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (a *Appointment) View() AppointmentView {
	return AppointmentView{
		ID:              a.ID,
		Client:          a.Client.Summary(),
		AppointmentDate: a.AppointmentDate,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Category:        a.Category,
		SubCategory:     a.SubCategory,
		Platform:        a.Platform,
		Type:            a.Type,
		Status:          a.Status,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
