package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerboy448/compose-sanitizer/core"
)

func TestRender(t *testing.T) {
	res := &core.Result{
		Output: "services:\n  app:\n    image: nginx\n",
		Stats:  core.Stats{RedactedEnvVars: 2, AnonymizedPaths: 1},
		Advisories: []core.Advisory{{
			Type:     core.AdvisoryHardlinks,
			Message:  "Separate mounts prevent hardlinks.",
			Link:     "https://example.com/hardlinks",
			Services: []string{"sonarr", "radarr"},
		}},
		Services: []core.ServiceInfo{
			{Name: "app", Image: "nginx", Ports: []string{"80:80"}},
		},
	}

	var sb strings.Builder
	require.NoError(t, New().Render(&sb, res))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "# Sanitized Docker Compose\n"))
	assert.Contains(t, out, "```yaml\nservices:\n  app:\n    image: nginx\n```\n")
	assert.Contains(t, out, "## Services")
	assert.Contains(t, out, "## Advisories")
	assert.Contains(t, out, "[Learn more](https://example.com/hardlinks)")
	assert.Contains(t, out, "(Services: sonarr, radarr)")
	assert.Contains(t, out, "_2 env vars redacted, 1 path anonymized_")
}

func TestRenderMinimal(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, New().Render(&sb, &core.Result{Output: "services: {}\n"}))
	out := sb.String()

	assert.NotContains(t, out, "## Services")
	assert.NotContains(t, out, "## Volumes")
	assert.NotContains(t, out, "## Advisories")
	assert.Contains(t, out, "_No sensitive values detected_")
}

func TestServicesTable(t *testing.T) {
	table := ServicesTable([]core.ServiceInfo{
		{
			Name:     "app",
			Image:    "nginx:latest",
			Ports:    []string{"80:80", "443:443"},
			Volumes:  []string{"~/data:/data"},
			Networks: []core.NetworkInfo{{Name: "proxy"}},
		},
		{Name: "db", Image: "postgres"},
	})

	lines := strings.Split(table, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Service | Image | Ports | Volumes | Networks |", lines[0])
	assert.Equal(t, "| --- | --- | --- | --- | --- |", lines[1])
	assert.Equal(t, "| app | nginx:latest | 80:80, 443:443 | ~/data:/data | proxy |", lines[2])
	assert.Equal(t, "| db | postgres |  |  |  |", lines[3])
}

func TestServicesTableEscaping(t *testing.T) {
	table := ServicesTable([]core.ServiceInfo{
		{Name: "a|b", Image: "img\nwith newline"},
	})
	assert.Contains(t, table, `a\|b`)
	assert.Contains(t, table, "img with newline")
}

func TestServicesTableEmpty(t *testing.T) {
	assert.Equal(t, "", ServicesTable(nil))
}

func TestVolumeTable(t *testing.T) {
	table := VolumeTable([]core.ServiceInfo{
		{Name: "sonarr", Volumes: []string{"~/media:/tv:ro"}},
		{Name: "radarr", Volumes: []string{"~/media:/movies"}},
	})

	lines := strings.Split(table, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "| Host Path | sonarr | radarr |", lines[0])
	assert.Equal(t, "| ~/media | /tv (ro) | /movies |", lines[2])
}

func TestVolumeTableEmptyCells(t *testing.T) {
	table := VolumeTable([]core.ServiceInfo{
		{Name: "a", Volumes: []string{"/srv/x:/x"}},
		{Name: "b"},
	})
	assert.Contains(t, table, "| /srv/x | /x | — |")
}

func TestVolumeTableNoMappings(t *testing.T) {
	assert.Equal(t, "", VolumeTable([]core.ServiceInfo{{Name: "a", Volumes: []string{"anonymous"}}}))
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name  string
		stats core.Stats
		want  string
	}{
		{"none", core.Stats{}, "No sensitive values detected"},
		{"singular", core.Stats{RedactedEnvVars: 1}, "1 env var redacted"},
		{"plural", core.Stats{RedactedEnvVars: 3}, "3 env vars redacted"},
		{"email only", core.Stats{RedactedEmails: 2}, "2 emails redacted"},
		{
			"all three",
			core.Stats{RedactedEnvVars: 2, RedactedEmails: 1, AnonymizedPaths: 4},
			"2 env vars redacted, 1 email redacted, 4 paths anonymized",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatsLine(tt.stats))
		})
	}
}
