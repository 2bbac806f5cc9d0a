// Package validation holds the storage-independent checks applied to request
// payloads: single-field format rules and whole-struct schema validation.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 6
	passwordSymbols   = "@$!%*?&"

	// MaxPasswordBytes is the longest input bcrypt will hash.
	MaxPasswordBytes = 72
)

// local-part "@" domain "." tld, no whitespace and a single "@".
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail performs a purely syntactic check; no DNS lookups.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// FitsPasswordBytes reports whether password is short enough to be hashed.
// The limit is in bytes, so multi-byte characters count more than once.
func FitsPasswordBytes(password string) bool {
	return len(password) <= MaxPasswordBytes
}

// IsValidPassword requires at least six characters with one ASCII lowercase
// letter, one ASCII uppercase letter, one ASCII digit and one symbol from
// passwordSymbols. Other characters are allowed but count toward no class.
func IsValidPassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength || !FitsPasswordBytes(password) {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
