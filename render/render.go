// Package render defines the interface for rendering sanitize results into
// various output formats.
package render

import (
	"io"

	"github.com/bakerboy448/compose-sanitizer/core"
)

// Renderer writes a sanitize result to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, res *core.Result) error
}
