package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"scheduled", "completed", "cancelled", "rescheduled"} {
		got, err := ParseStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, Status(s), got)
	}

	_, err := ParseStatus("archived")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestParsePlatform(t *testing.T) {
	got, err := ParsePlatform(" in-person ")
	assert.NoError(t, err)
	assert.Equal(t, PlatformInPerson, got)

	_, err = ParsePlatform("fax")
	assert.True(t, httperr.IsBusiness(err, "invalid_platform"))

	// The allowed set is named in the message.
	assert.Contains(t, httperr.BusinessMessage(err), "whatsapp")
}

func TestParseType(t *testing.T) {
	got, err := ParseType("maintenance")
	assert.NoError(t, err)
	assert.Equal(t, TypeMaintenance, got)

	// Legacy enum value from older revisions.
	_, err = ParseType("follow-up")
	assert.True(t, httperr.IsBusiness(err, "invalid_type"))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusScheduled, InitialStatus())
}
