package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-contactform/pkg/model"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	websitePattern  = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*\.[a-zA-Z]{2,}(/.*)?$`)
	protocolPattern = regexp.MustCompile(`(?i)^https?://`)
)

// IsValidEmail reports whether email has the local@domain.tld shape. The
// value is not trimmed; surrounding whitespace fails the check.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SanitizeWebsite strips a leading http(s) prefix, then surrounding whitespace,
// and returns the remaining host/path when it looks like a hostname. Anything
// else collapses to "" so a malformed optional field never blocks a
// submission. The prefix is only recognised at the very start of raw.
func SanitizeWebsite(raw string) string {
	site := protocolPattern.ReplaceAllString(raw, "")
	site = strings.TrimSpace(site)
	if site == "" {
		return ""
	}
	if strings.IndexFunc(site, unicode.IsSpace) >= 0 {
		return ""
	}
	if !websitePattern.MatchString(site) {
		return ""
	}
	return site
}

// MissingRequired lists the fields the pipeline refuses to send without:
// name, email and project, each checked after trimming.
func MissingRequired(form model.FormData) []model.Field {
	var missing []model.Field
	for _, field := range []model.Field{model.FieldName, model.FieldEmail, model.FieldProject} {
		if strings.TrimSpace(form.Get(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
