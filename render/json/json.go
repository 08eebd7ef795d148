// Package json renders sanitize results as JSON (serializes the result
// model as-is).
package json

import (
	"encoding/json"
	"io"

	"github.com/bakerboy448/compose-sanitizer/core"
)

// Renderer renders a result to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// New creates a JSON Renderer with pretty-printing enabled.
func New() *Renderer {
	return &Renderer{Indent: true}
}

// Render writes the result as a single JSON document to w.
func (r *Renderer) Render(w io.Writer, res *core.Result) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}
