package widgets

import "io"

// TemplateRenderer executes a named page template. go-template renderers
// satisfy it; the Controller only needs this method.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
