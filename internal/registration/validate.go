package registration

import (
	"regexp"
	"strings"
)

// local part, "@", domain with at least one dot, no whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// NormalizeEmail lowers the case for duplicate comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips spaces and dashes so "0123-456-789" and
// "0123456789" compare equal.
func NormalizePhone(phone string) string {
	phone = strings.ReplaceAll(phone, " ", "")
	return strings.ReplaceAll(phone, "-", "")
}

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// validPhone accepts numbers whose normalized form is 10 or 11 digits.
func validPhone(phone string) bool {
	n := NormalizePhone(phone)
	return digitsOnly.MatchString(n) && (len(n) == 10 || len(n) == 11)
}
