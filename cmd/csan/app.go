package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bakerboy448/compose-sanitizer/config"
	"github.com/bakerboy448/compose-sanitizer/core"
	"github.com/bakerboy448/compose-sanitizer/redact"
	"github.com/bakerboy448/compose-sanitizer/render"
	htmlrender "github.com/bakerboy448/compose-sanitizer/render/html"
	jsonrender "github.com/bakerboy448/compose-sanitizer/render/json"
	"github.com/bakerboy448/compose-sanitizer/render/markdown"
	"github.com/bakerboy448/compose-sanitizer/render/terminal"
	"github.com/bakerboy448/compose-sanitizer/sanitize"
)

// app holds the renderer registry and the settings store used by CLI
// commands.
type app struct {
	renderers map[string]func() render.Renderer
	store     config.Store
}

func newApp() (*app, error) {
	store, err := config.DefaultStore()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return &app{
		renderers: map[string]func() render.Renderer{
			"terminal": func() render.Renderer { return &terminal.Renderer{ShowYAML: true} },
			"yaml":     func() render.Renderer { return yamlRenderer{} },
			"markdown": func() render.Renderer { return markdown.New() },
			"html":     func() render.Renderer { return htmlrender.New() },
			"json":     func() render.Renderer { return jsonrender.New() },
		},
		store: store,
	}, nil
}

func (a *app) renderer(name string) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(), nil
}

func (a *app) config() redact.Config {
	return config.Load(a.store)
}

// yamlRenderer writes just the sanitized YAML text.
type yamlRenderer struct{}

func (yamlRenderer) Render(w io.Writer, res *core.Result) error {
	_, err := io.WriteString(w, res.Output)
	return err
}

// readInput reads the whole input from a file path, or stdin when path is
// empty or "-". Reads are capped just past the pipeline ceiling so oversized
// input is rejected by the size check, not truncated silently.
func readInput(path string) (string, error) {
	var r io.Reader
	switch path {
	case "", "-":
		r = os.Stdin
	default:
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, sanitize.MaxInputBytes+1))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
