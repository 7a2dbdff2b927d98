// Package redact strips credentials from strings before they are logged.
// The toolkit logs every exchange it performs, and those exchanges carry
// bearer tokens, refresh cookies and test passwords.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	dbConnRegex   = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|sqlite)://[^@\s]+@`)
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	bearerRegex   = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/=]+`)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)(["']?\s*[=:]\s*["']?)[^"'&,\s}]+`)
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := dbConnRegex.ReplaceAllString(input, "${1}://"+RedactedCredentialPlaceholder+"@")
	result = jwtTokenRegex.ReplaceAllString(result, RedactedJWTPlaceholder)
	result = bearerRegex.ReplaceAllString(result, "Bearer "+RedactedCredentialPlaceholder)
	result = passwordRegex.ReplaceAllString(result, "${1}${2}"+RedactedCredentialPlaceholder)
	result = emailRegex.ReplaceAllString(result, RedactedEmailPlaceholder)
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
