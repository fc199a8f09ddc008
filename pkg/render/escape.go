package render

import "strings"

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	breakReplacer = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "\r", "<br>")
)

// EscapeHTML converts the five markup-significant characters to entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeHTMLWithBreaks escapes s and turns line endings into <br> so
// multi-line input keeps its shape inside HTML.
func EscapeHTMLWithBreaks(s string) string {
	return breakReplacer.Replace(EscapeHTML(s))
}
