// Package template defines the template seam used to render email bodies.
// The gotemplate subpackage provides the pongo2-backed implementation.
package template
