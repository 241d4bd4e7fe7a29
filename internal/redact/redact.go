// Package redact scrubs credentials, personal data and SQL out of error
// strings before they reach logs. The API layer runs every error it logs
// through Error.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	Credential = "[REDACTED_CREDENTIAL]"
	Token      = "[REDACTED_TOKEN]"
	Email      = "[REDACTED_EMAIL]"
	SQL        = "[REDACTED_SQL]"
	Path       = "[REDACTED_PATH]"
	Host       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; connection strings go first so their user info is
// gone before the email and host rules see it.
var rules = []rule{
	{regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx)://[^@\s]+@`), Credential},
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret)\s*[=:]\s*['"]?[^'"&\s]+`), Credential},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), Token},
	{regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/]{8,}=*`), Token},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), Email},
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|TRUNCATE)\b[^;]*?\b(FROM|INTO|SET|TABLE)\b[^;]*`), SQL},
	{regexp.MustCompile(`(?:/[\w.-]+){2,}`), Path},
	{regexp.MustCompile(`\b(?:[A-Za-z0-9-]+\.)+(?:com|net|org|io|internal|local)(?::\d{1,5})?\b`), Host},
}

// String returns s with every sensitive fragment replaced.
func String(s string) string {
	for _, r := range rules {
		if s == "" {
			break
		}
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
