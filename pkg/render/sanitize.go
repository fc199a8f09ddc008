package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicyOnce sync.Once
	emailPolicy     *bluemonday.Policy
)

// SanitizeEmailHTML runs rendered email markup through an allowlist covering
// only the elements the inquiry template emits.
func SanitizeEmailHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(emailSanitizer().Sanitize(trimmed))
}

func emailSanitizer() *bluemonday.Policy {
	emailPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "h2", "h3", "p", "strong", "br", "hr", "table", "tbody", "tr", "td", "span")

		policy.AllowStyles(
			"color", "background-color", "font-family", "font-size", "font-weight",
			"margin", "margin-bottom", "padding", "border-left", "border-radius",
			"line-height", "max-width",
		).Globally()

		emailPolicy = policy
	})
	return emailPolicy
}
