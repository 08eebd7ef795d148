package terminal

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerboy448/compose-sanitizer/core"
	"github.com/bakerboy448/compose-sanitizer/redact"
)

func TestRenderServiceCard(t *testing.T) {
	res := &core.Result{
		Output: "services:\n  sonarr:\n    image: linuxserver/sonarr\n",
		Stats:  core.Stats{RedactedEnvVars: 1, AnonymizedPaths: 2},
		Services: []core.ServiceInfo{
			{
				Name:    "sonarr",
				Image:   "linuxserver/sonarr",
				Ports:   []string{"8989:8989"},
				Volumes: []string{"~/media:/tv:ro", "~/config:/config"},
				Networks: []core.NetworkInfo{
					{Name: "proxy", Aliases: []string{"tv"}, IPv4Address: "172.20.0.9"},
				},
				Environment: []core.EnvVar{
					{Key: "PUID", Value: "1000"},
					{Key: "API_KEY", Value: redact.Marker},
				},
				Extras: []core.EnvVar{{Key: "restart", Value: "unless-stopped"}},
			},
		},
	}

	r := &Renderer{Width: 100}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, res))

	out := ansi.Strip(buf.String())

	assert.Contains(t, out, "1 env var redacted, 2 paths anonymized")
	assert.Contains(t, out, "sonarr")
	assert.Contains(t, out, "image: linuxserver/sonarr")
	assert.Contains(t, out, "8989:8989")
	assert.Contains(t, out, "~/media")
	assert.Contains(t, out, "→ /tv (ro)")
	assert.Contains(t, out, "→ /config")
	assert.Contains(t, out, "proxy (aliases: tv) [172.20.0.9]")
	assert.Contains(t, out, "PUID=1000")
	assert.Contains(t, out, "API_KEY="+redact.Marker)
	assert.Contains(t, out, "restart: unless-stopped")
}

func TestRenderAdvisory(t *testing.T) {
	res := &core.Result{
		Output: "services: {}\n",
		Advisories: []core.Advisory{{
			Type:     core.AdvisoryHardlinks,
			Message:  "Separate mounts prevent hardlinks.",
			Link:     "https://example.com/hardlinks",
			Services: []string{"sonarr", "radarr"},
		}},
	}

	r := &Renderer{Width: 100}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, res))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "Separate mounts prevent hardlinks.")
	assert.Contains(t, out, "(sonarr, radarr)")
	assert.Contains(t, out, "https://example.com/hardlinks")
}

func TestRenderShowYAML(t *testing.T) {
	res := &core.Result{
		Output: "services:\n  app:\n    environment:\n      TOKEN: '" + redact.Marker + "'\n",
	}

	r := &Renderer{Width: 100, ShowYAML: true}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, res))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "services:")
	assert.Contains(t, out, redact.Marker)
	assert.Contains(t, out, "No sensitive values detected")
}

func TestRenderNoServices(t *testing.T) {
	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, &core.Result{Output: "services: {}\n"}))

	out := ansi.Strip(buf.String())
	assert.NotContains(t, out, "image:")
	assert.Contains(t, out, "No sensitive values detected")
}
