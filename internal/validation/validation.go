package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// IsValidEmail reports whether s looks like an email address. The check
// is deliberately loose (non-space@non-space.non-space); it rejects
// embedded spaces and a missing @ or dot, nothing more.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidatePassword enforces the password policy. Lengths are counted in
// characters, not bytes. The returned message is user-facing and goes
// into the API response verbatim.
func ValidatePassword(s string) (bool, string) {
	length := utf8.RuneCountInString(s)
	if length < 6 {
		return false, "Password must be at least 6 characters"
	}
	if length > 50 {
		return false, "Password cannot exceed 50 characters"
	}
	return true, ""
}

// SanitizeString trims whitespace and strips literal angle brackets.
// It is not an HTML sanitizer: "<script>" becomes "script", inner text
// is kept intact.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

// IsFutureDate reports whether t is strictly after the current time.
func IsFutureDate(t time.Time) bool {
	return t.After(time.Now())
}
