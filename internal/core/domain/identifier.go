package domain

import (
	"regexp"
	"strings"
)

// InstitutionalDomain is appended to a bare student number to form its email.
const InstitutionalDomain = "gordoncollege.edu.ph"

var studentNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)

// IsStudentNumber reports whether raw is exactly nine decimal digits.
func IsStudentNumber(raw string) bool {
	return studentNumberPattern.MatchString(raw)
}

// NormalizeIdentifier maps a raw identifier to the email used as the directory
// lookup key. A nine-digit student number becomes <digits>@<institutionalDomain>;
// anything else is lower-cased as-is. Malformed input is passed through, not rejected.
func NormalizeIdentifier(raw, institutionalDomain string) string {
	if IsStudentNumber(raw) {
		return raw + "@" + institutionalDomain
	}
	return strings.ToLower(raw)
}
