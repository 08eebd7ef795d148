// Package html renders sanitize results as standalone HTML pages styled with
// Tailwind CSS v4 (CDN) and syntax highlighting via goldmark + chroma.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/bakerboy448/compose-sanitizer/core"
	"github.com/bakerboy448/compose-sanitizer/render/markdown"
)

//go:embed templates/*.html
var content embed.FS

// Renderer renders a result to a standalone HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// New creates an HTML Renderer with goldmark configured for GFM tables and
// syntax highlighting of the YAML fence.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)

	tmpl := template.Must(template.New("page.html").ParseFS(content, "templates/*.html"))

	return &Renderer{md: md, tmpl: tmpl}
}

// pageData is the template data passed to page.html.
type pageData struct {
	Body      template.HTML
	StatsLine string
}

// Render converts the Markdown export of res through goldmark and wraps it
// in the embedded page template.
func (r *Renderer) Render(w io.Writer, res *core.Result) error {
	var mdBuf bytes.Buffer
	if err := markdown.New().Render(&mdBuf, res); err != nil {
		return fmt.Errorf("markdown export: %w", err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(mdBuf.Bytes(), &body); err != nil {
		return fmt.Errorf("goldmark convert: %w", err)
	}

	data := pageData{
		Body:      template.HTML(body.String()),
		StatsLine: markdown.StatsLine(res.Stats),
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}
