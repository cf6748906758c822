// Package validator checks that an email address is worth sending to the waitlist.
package validator

import (
	"errors"
	"strings"
)

// ErrInvalidEmail is returned for empty addresses and addresses without an '@'.
var ErrInvalidEmail = errors.New("invalid email address")

// Validate applies the only rule the waitlist form enforces: the address must
// be non-empty and contain '@'. Anything stricter is left to the server.
func Validate(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}

	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	return nil
}

// IsValid reports whether Validate accepts email.
func IsValid(email string) bool {
	return Validate(email) == nil
}
