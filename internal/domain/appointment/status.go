package appointment

import (
	"fmt"
	"strings"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
)

// ===============================
// Appointment enumerations
// ===============================
//
// Each field is validated once at the boundary and carried as a typed
// value from there on. All status transitions are re-entrant: no state
// is terminal, which the calendar UI relies on for corrections.

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

type Platform string

const (
	PlatformWebsite   Platform = "website"
	PlatformPhone     Platform = "phone"
	PlatformInPerson  Platform = "in-person"
	PlatformWhatsapp  Platform = "whatsapp"
	PlatformInstagram Platform = "instagram"
)

type Type string

const (
	TypeConsultation Type = "consultation"
	TypeTreatment    Type = "treatment"
	TypeMaintenance  Type = "maintenance"
)

var (
	validStatuses  = []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusRescheduled}
	validPlatforms = []Platform{PlatformWebsite, PlatformPhone, PlatformInPerson, PlatformWhatsapp, PlatformInstagram}
	validTypes     = []Type{TypeConsultation, TypeTreatment, TypeMaintenance}
)

// ===============================
// Boundary parsing
// ===============================

func ParseStatus(s string) (Status, error) {
	for _, v := range validStatuses {
		if Status(s) == v {
			return v, nil
		}
	}
	return "", httperr.ErrBusinessMsg("invalid_status", "Invalid status value")
}

func ParsePlatform(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	for _, v := range validPlatforms {
		if Platform(s) == v {
			return v, nil
		}
	}
	return "", httperr.ErrBusinessMsg(
		"invalid_platform",
		fmt.Sprintf("Invalid platform. Must be one of: %s", joinPlatforms()),
	)
}

func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, v := range validTypes {
		if Type(s) == v {
			return v, nil
		}
	}
	return "", httperr.ErrBusinessMsg(
		"invalid_type",
		fmt.Sprintf("Invalid type. Must be one of: %s", joinTypes()),
	)
}

func InitialStatus() Status {
	return StatusScheduled
}

func joinPlatforms() string {
	parts := make([]string, len(validPlatforms))
	for i, v := range validPlatforms {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func joinTypes() string {
	parts := make([]string, len(validTypes))
	for i, v := range validTypes {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
