package template

import "io"

// Renderer renders named templates or inline template strings. Output is
// returned and, when writers are supplied, copied to each of them.
type Renderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
