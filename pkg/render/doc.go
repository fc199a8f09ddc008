// Package render turns a submitted contact form into the inquiry email. It owns
// the HTML escaping helpers, the embedded pongo2 templates, the bluemonday
// allowlist applied to the final markup, and the go-theme palette that colors
// it.
package render
