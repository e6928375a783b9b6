package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImportFixture() (*ImportAppointments, *fakeRepo, *capturePub) {
	repo := newFakeRepo()
	pub := &capturePub{}
	createUC := NewCreateAppointment(repo, pub, time.UTC, "male")
	return NewImportAppointments(createUC, repo), repo, pub
}

func importRow(name, start, end string) CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientName: name,
		ClientAge:  40,
		Start:      start,
		End:        end,
		Platform:   "phone",
		Type:       "treatment",
	}
}

func TestImportAppointments(t *testing.T) {
	uc, repo, _ := newImportFixture()

	result, err := uc.Execute(context.Background(), ImportAppointmentsInput{
		Rows: []CreateAppointmentInput{
			importRow("Alice Brown", "2025-06-01T09:00:00", "2025-06-01T10:00:00"),
			importRow("Bob Green", "2025-06-01T10:00:00", "2025-06-01T11:00:00"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Len(t, repo.appointments, 2)
}

func TestImportSkipsDuplicateClientAndStart(t *testing.T) {
	uc, repo, _ := newImportFixture()

	row := importRow("Alice Brown", "2025-06-01T09:00:00", "2025-06-01T10:00:00")

	first, err := uc.Execute(context.Background(), ImportAppointmentsInput{
		Rows: []CreateAppointmentInput{row},
	})
	require.NoError(t, err)
	require.Equal(t, 1, first.Imported)

	// Re-importing the same sheet is a no-op.
	second, err := uc.Execute(context.Background(), ImportAppointmentsInput{
		Rows: []CreateAppointmentInput{row},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, repo.appointments, 1)
}

func TestImportReportsRowErrors(t *testing.T) {
	uc, repo, _ := newImportFixture()

	result, err := uc.Execute(context.Background(), ImportAppointmentsInput{
		Rows: []CreateAppointmentInput{
			importRow("Alice Brown", "2025-06-01T09:00:00", "2025-06-01T10:00:00"),
			importRow("", "2025-06-02T09:00:00", "2025-06-02T10:00:00"),
			importRow("Carl White", "2025-06-03T11:00:00", "2025-06-03T10:00:00"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].Row)
	assert.Equal(t, "missing_client", result.Errors[0].Code)
	assert.Equal(t, 2, result.Errors[1].Row)
	assert.Equal(t, "invalid_time_range", result.Errors[1].Code)
	assert.Len(t, repo.appointments, 1)
}
