// Package terminal renders sanitize results as ANSI-colored service cards.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/bakerboy448/compose-sanitizer/core"
	"github.com/bakerboy448/compose-sanitizer/redact"
	"github.com/bakerboy448/compose-sanitizer/render/markdown"
)

const defaultWidth = 100

// Renderer pretty-prints a result as service cards to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
	// ShowYAML also prints the sanitized YAML above the cards.
	ShowYAML bool
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the stats line, advisories, and one card per service to w.
func (r *Renderer) Render(w io.Writer, res *core.Result) error {
	width := r.termWidth()

	if r.ShowYAML {
		fmt.Fprintln(w, highlightMarker(strings.TrimRight(res.Output, "\n")))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, styleMeta.Render(markdown.StatsLine(res.Stats)))

	for _, adv := range res.Advisories {
		fmt.Fprintln(w)
		writeAdvisory(w, adv, width)
	}

	for _, svc := range res.Services {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", min(width, defaultWidth))))
		writeCard(w, svc)
	}

	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func writeAdvisory(w io.Writer, adv core.Advisory, width int) {
	text := fmt.Sprintf("⚠ %s (%s)", adv.Message, strings.Join(adv.Services, ", "))
	fmt.Fprintln(w, styleAdvisory.Width(width).Render(text))
	fmt.Fprintln(w, styleMeta.Render("  "+adv.Link))
}

func writeCard(w io.Writer, svc core.ServiceInfo) {
	fmt.Fprintln(w, styleServiceName.Render(svc.Name))

	if svc.Image != "" {
		writeField(w, "image", svc.Image)
	}
	if len(svc.Ports) > 0 {
		writeList(w, "ports", svc.Ports)
	}
	if len(svc.Volumes) > 0 {
		writeVolumes(w, svc.Volumes)
	}
	if len(svc.Networks) > 0 {
		writeList(w, "networks", networkLines(svc.Networks))
	}
	if len(svc.Environment) > 0 {
		writeEnv(w, svc.Environment)
	}
	for _, extra := range svc.Extras {
		writeField(w, extra.Key, extra.Value)
	}
}

func writeField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", styleLabel.Render(label+":"), styleValue.Render(value))
}

func writeList(w io.Writer, label string, items []string) {
	fmt.Fprintf(w, "  %s\n", styleLabel.Render(label+":"))
	for _, item := range items {
		fmt.Fprintf(w, "    %s\n", styleValue.Render(item))
	}
}

// writeVolumes renders the parsed source → target (mode) grid.
func writeVolumes(w io.Writer, volumes []string) {
	fmt.Fprintf(w, "  %s\n", styleLabel.Render("volumes:"))

	parsed := make([]core.ParsedVolume, len(volumes))
	sourceWidth := 0
	for i, vol := range volumes {
		parsed[i] = core.ParseVolume(vol)
		sourceWidth = max(sourceWidth, lipgloss.Width(parsed[i].Source))
	}

	for _, v := range parsed {
		line := fmt.Sprintf("    %-*s → %s", sourceWidth, v.Source, v.Target)
		if v.Mode != "" {
			line += " " + styleMeta.Render("("+v.Mode+")")
		}
		fmt.Fprintln(w, styleValue.Render(line))
	}
}

func writeEnv(w io.Writer, env []core.EnvVar) {
	fmt.Fprintf(w, "  %s\n", styleLabel.Render("environment:"))
	for _, e := range env {
		value := styleValue.Render(e.Value)
		if e.Value == redact.Marker {
			value = styleRedacted.Render(e.Value)
		}
		fmt.Fprintf(w, "    %s=%s\n", styleValue.Render(e.Key), value)
	}
}

func networkLines(networks []core.NetworkInfo) []string {
	lines := make([]string, len(networks))
	for i, n := range networks {
		line := n.Name
		if len(n.Aliases) > 0 {
			line += " (aliases: " + strings.Join(n.Aliases, ", ") + ")"
		}
		if n.IPv4Address != "" {
			line += " [" + n.IPv4Address + "]"
		}
		lines[i] = line
	}
	return lines
}

// highlightMarker colors redaction markers inside the YAML output.
func highlightMarker(yamlText string) string {
	return strings.ReplaceAll(yamlText, redact.Marker, styleRedacted.Render(redact.Marker))
}
