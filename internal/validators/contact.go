package validators

import "regexp"

// E.164-ish, optional leading +, no leading zero.
var contactRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

func IsValidContact(contact string) bool {
	if contact == "" {
		return false
	}
	return contactRe.MatchString(contact)
}
