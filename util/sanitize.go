// Package util holds small helpers shared by the service packages.
package util

import (
	"regexp"
)

// MaxSanitizeLength bounds the input scanned by SanitizeString.
// Longer input is truncated first.
const MaxSanitizeLength = 64 * 1024

var sanitizePatterns = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	// Authorization header schemes
	{regexp.MustCompile(`(?i)\b(basic|bearer|apikey)\s+[a-zA-Z0-9_\-\.=+/]+`), "$1 REDACTED"},

	// key=value and key: value secrets
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd|token|authorization|api[_-]?key|secret)([\s]*[:=][\s]*)["']?[^\s"',;&]+["']?`), "$1=REDACTED"},

	// JSON secrets
	{regexp.MustCompile(`(?i)"(password|token|authorization|api[_-]?key|secret)"\s*:\s*"[^"]*"`), `"$1":"REDACTED"`},

	// Credentials embedded in URLs
	{regexp.MustCompile(`(https?://)[^/\s:@]+(:[^/\s@]*)?@`), "${1}REDACTED@"},
}

// SanitizeError returns the error message with credentials redacted, for
// logging failures that may echo request headers or backend URLs.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeString redacts credentials from s.
func SanitizeString(s string) string {
	if s == "" {
		return ""
	}

	if len(s) > MaxSanitizeLength {
		s = s[:MaxSanitizeLength] + "... [truncated]"
	}

	for _, p := range sanitizePatterns {
		s = p.pattern.ReplaceAllString(s, p.replacement)
	}
	return s
}
