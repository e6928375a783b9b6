package client

import (
	"strings"
	"unicode"

	"github.com/clinicbase/clinic-scheduler/internal/httperr"
)

// Age bounds accepted on client creation.
const (
	MinAge = 1
	MaxAge = 120
)

// Normalize reduces a display name to the dedup key: lowercase, every
// character outside [a-z0-9] and whitespace stripped, whitespace runs
// collapsed to a single underscore. Idempotent, so re-normalizing a
// stored key is a no-op.
func Normalize(name string) string {
	var b strings.Builder
	inSpace := false
	started := false

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_':
			if inSpace && started {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			inSpace = false
			started = true
		case unicode.IsSpace(r):
			inSpace = true
		}
	}

	return b.String()
}

// ValidateAge guards new-client creation; an existing match is returned
// as-is regardless of the supplied age (first write wins).
func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return httperr.ErrBusinessMsg("invalid_age", "Client age must be between 1 and 120")
	}
	return nil
}
