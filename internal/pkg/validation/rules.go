package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Username: lowercase letters, digits, underscore, dot; 3-30 chars
	UsernamePattern = `^[a-z0-9._]{3,30}$`

	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Password min length
	PasswordMinLength = 8

	// Title min/max length
	TitleMinLength = 1
	TitleMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username *regexp.Regexp
	Email    *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
	Email:    regexp.MustCompile(EmailPattern),
}

// IsValidUsername reports whether the username matches the allowed pattern.
func IsValidUsername(username string) bool {
	return CompiledPatterns.Username.MatchString(username)
}

// IsValidEmail reports whether the email matches the allowed pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidPassword reports whether the password satisfies the minimum length.
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// IsValidTitle reports whether an item title is within bounds. Whitespace-only
// titles are rejected.
func IsValidTitle(title string) bool {
	return len(strings.TrimSpace(title)) >= TitleMinLength && len(title) <= TitleMaxLength
}
