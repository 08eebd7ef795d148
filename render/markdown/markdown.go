// Package markdown renders a sanitize result as a shareable Markdown
// document: the cleaned YAML, a service comparison table, a volume matrix,
// and any advisories.
package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/bakerboy448/compose-sanitizer/core"
)

// Renderer renders a result to Markdown.
type Renderer struct{}

// New creates a Markdown Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the full Markdown export to w.
func (r *Renderer) Render(w io.Writer, res *core.Result) error {
	var sb strings.Builder

	sb.WriteString("# Sanitized Docker Compose\n\n")
	sb.WriteString("```yaml\n")
	sb.WriteString(strings.TrimRight(res.Output, "\n"))
	sb.WriteString("\n```\n")

	if table := ServicesTable(res.Services); table != "" {
		sb.WriteString("\n## Services\n\n")
		sb.WriteString(table)
		sb.WriteString("\n")
	}

	if table := VolumeTable(res.Services); table != "" {
		sb.WriteString("\n## Volumes\n\n")
		sb.WriteString(table)
		sb.WriteString("\n")
	}

	if len(res.Advisories) > 0 {
		sb.WriteString("\n## Advisories\n\n")
		for _, adv := range res.Advisories {
			fmt.Fprintf(&sb, "- ⚠️ %s [Learn more](%s) (Services: %s)\n",
				adv.Message, adv.Link, strings.Join(adv.Services, ", "))
		}
	}

	sb.WriteString("\n_" + StatsLine(res.Stats) + "_\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// ServicesTable renders the per-service comparison table. Returns "" for an
// empty service list.
func ServicesTable(services []core.ServiceInfo) string {
	if len(services) == 0 {
		return ""
	}

	lines := []string{
		"| Service | Image | Ports | Volumes | Networks |",
		"| --- | --- | --- | --- | --- |",
	}
	for _, svc := range services {
		names := make([]string, len(svc.Networks))
		for i, n := range svc.Networks {
			names[i] = n.Name
		}
		cells := []string{
			escapeCell(svc.Name),
			escapeCell(svc.Image),
			escapeCell(strings.Join(svc.Ports, ", ")),
			escapeCell(strings.Join(svc.Volumes, ", ")),
			escapeCell(strings.Join(names, ", ")),
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return strings.Join(lines, "\n")
}

// VolumeTable renders the host-path matrix: one row per unique host path,
// one column per service, cells showing "target (mode)". Returns "" when no
// volume has both a source and a target.
func VolumeTable(services []core.ServiceInfo) string {
	matrix := core.BuildVolumeMatrix(services)
	if len(matrix.HostPaths) == 0 {
		return ""
	}

	header := []string{"Host Path"}
	for _, svc := range services {
		header = append(header, escapeCell(svc.Name))
	}
	lines := []string{
		"| " + strings.Join(header, " | ") + " |",
		"|" + strings.Repeat(" --- |", len(header)),
	}

	for _, hostPath := range matrix.HostPaths {
		row := []string{escapeCell(hostPath)}
		for _, svc := range services {
			mapping, ok := matrix.Matrix[hostPath][svc.Name]
			if !ok {
				row = append(row, "—")
				continue
			}
			cell := mapping.Target
			if mapping.Mode != "" {
				cell += " (" + mapping.Mode + ")"
			}
			row = append(row, escapeCell(cell))
		}
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}
	return strings.Join(lines, "\n")
}

// StatsLine renders the human stats summary, e.g.
// "2 env vars redacted, 1 path anonymized".
func StatsLine(stats core.Stats) string {
	var parts []string
	if n := stats.RedactedEnvVars; n > 0 {
		parts = append(parts, fmt.Sprintf("%d env var%s redacted", n, plural(n)))
	}
	if n := stats.RedactedEmails; n > 0 {
		parts = append(parts, fmt.Sprintf("%d email%s redacted", n, plural(n)))
	}
	if n := stats.AnonymizedPaths; n > 0 {
		parts = append(parts, fmt.Sprintf("%d path%s anonymized", n, plural(n)))
	}
	if len(parts) == 0 {
		return "No sensitive values detected"
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// escapeCell makes a value safe inside a Markdown table cell.
func escapeCell(value string) string {
	value = strings.ReplaceAll(value, "|", `\|`)
	return strings.ReplaceAll(value, "\n", " ")
}
