// Package server provides a local HTTP server with a paste form for
// sanitizing compose files in the browser.
package server

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	htmlrender "github.com/bakerboy448/compose-sanitizer/render/html"
	"github.com/bakerboy448/compose-sanitizer/redact"
	"github.com/bakerboy448/compose-sanitizer/sanitize"
)

//go:embed templates/*.html
var content embed.FS

// Server serves the paste form and sanitized result pages. Stateless: every
// request runs the pipeline with its own config snapshot.
type Server struct {
	// Config is the redaction config applied to every request.
	Config redact.Config
	// Port is the TCP port to listen on.
	Port int

	tmpl     *template.Template
	renderer *htmlrender.Renderer
}

// New creates a Server with the given config and port.
func New(cfg redact.Config, port int) *Server {
	return &Server{
		Config:   cfg,
		Port:     port,
		tmpl:     template.Must(template.ParseFS(content, "templates/*.html")),
		renderer: htmlrender.New(),
	}
}

// formData is the template data for the paste form.
type formData struct {
	Error string
	Input string
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.tmpl.ExecuteTemplate(w, "form.html", formData{}); err != nil {
			slog.Error("render form", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("POST /sanitize", func(w http.ResponseWriter, req *http.Request) {
		// Same ceiling as the pipeline, plus headroom for form encoding.
		req.Body = http.MaxBytesReader(w, req.Body, 2*sanitize.MaxInputBytes)
		if err := req.ParseForm(); err != nil {
			s.renderForm(w, formData{Error: sanitize.ErrTooLarge.Error()})
			return
		}
		raw := req.PostFormValue("compose")

		res, err := sanitize.Run(raw, s.Config)
		if err != nil {
			slog.Info("sanitize rejected", "error", err)
			s.renderForm(w, formData{Error: err.Error(), Input: raw})
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.renderer.Render(w, res); err != nil {
			slog.Error("render result", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	})

	return mux
}

func (s *Server) renderForm(w http.ResponseWriter, data formData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "form.html", data); err != nil {
		slog.Error("render form", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// ListenAndServe binds localhost only; this is a local tool, not a service.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("localhost:%d", s.Port)
	slog.Info("serving", "addr", "http://"+addr)
	err := http.ListenAndServe(addr, s.Handler())
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
