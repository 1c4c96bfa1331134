package respond

import (
	"regexp"
)

var (
	// credentials embedded in DSNs and URLs, including redis://:password@host
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@\s]*):([^@\s]+)@`)

	// signed session tokens
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// stored password hashes
	bcryptPattern = regexp.MustCompile(`\$2[aby]?\$\d{2}\$[./A-Za-z0-9]{53}`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = jwtPattern.ReplaceAllString(msg, "eyJ****")
	msg = bcryptPattern.ReplaceAllString(msg, "$$2****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
