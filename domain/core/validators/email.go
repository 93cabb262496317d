package validators

import (
	"regexp"
	"strings"

	apperrors "reunion-backend/pkg/errors"
)

// emailShape enforces the local-part@domain.tld shape the invite form
// accepts. Deliverability is not checked here.
var emailShape = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// NormalizeEmail lower-cases and trims an address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail rejects empty or malformed addresses.
func ValidateEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return apperrors.NewValidationError("email address is required")
	}
	if !emailShape.MatchString(email) {
		return apperrors.NewValidationError("email address is not valid")
	}
	return nil
}
