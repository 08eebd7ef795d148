package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerboy448/compose-sanitizer/core"
)

func parse(t *testing.T, in string) []core.ServiceInfo {
	t.Helper()
	doc, err := core.Parse(in)
	require.NoError(t, err)
	return Parse(doc)
}

func TestParseSortsByName(t *testing.T) {
	services := parse(t, `services:
  zeta:
    image: c
  alpha:
    image: a
  mid:
    image: b
`)
	require.Len(t, services, 3)
	assert.Equal(t, "alpha", services[0].Name)
	assert.Equal(t, "mid", services[1].Name)
	assert.Equal(t, "zeta", services[2].Name)
}

func TestParseSkipsNonMappingEntries(t *testing.T) {
	services := parse(t, `services:
  good:
    image: nginx
  bad: just a string
`)
	require.Len(t, services, 1)
	assert.Equal(t, "good", services[0].Name)
}

func TestParseNoServices(t *testing.T) {
	assert.Empty(t, parse(t, "x-foo: bar\n"))
	assert.Empty(t, parse(t, "services: not a mapping\n"))
}

func TestNormalizePorts(t *testing.T) {
	services := parse(t, `services:
  app:
    ports:
      - "8080:80"
      - 9090
      - target: 443
        published: 8443
        protocol: tcp
      - target: 53
        published: 53
        host_ip: 127.0.0.1
        protocol: udp
`)
	require.Len(t, services, 1)
	assert.Equal(t, []string{
		"8080:80",
		"9090",
		"8443:443/tcp",
		"127.0.0.1:53:53/udp",
	}, services[0].Ports)
}

func TestNormalizeVolumes(t *testing.T) {
	services := parse(t, `services:
  app:
    volumes:
      - ~/config:/config:ro
      - type: bind
        source: /srv/media
        target: /data
      - type: volume
        source: db
        target: /var/lib/db
        read_only: true
`)
	require.Len(t, services, 1)
	assert.Equal(t, []string{
		"~/config:/config:ro",
		"/srv/media:/data",
		"db:/var/lib/db:ro",
	}, services[0].Volumes)
}

func TestExtractNetworks(t *testing.T) {
	t.Run("sequence form", func(t *testing.T) {
		services := parse(t, `services:
  app:
    networks:
      - proxy
      - backend
`)
		require.Len(t, services, 1)
		assert.Equal(t, []core.NetworkInfo{
			{Name: "backend"},
			{Name: "proxy"},
		}, services[0].Networks)
	})

	t.Run("mapping form", func(t *testing.T) {
		services := parse(t, `services:
  app:
    networks:
      proxy:
        aliases:
          - web
          - app.internal
        ipv4_address: 172.20.0.5
      backend:
`)
		require.Len(t, services, 1)
		require.Len(t, services[0].Networks, 2)
		assert.Equal(t, core.NetworkInfo{Name: "backend"}, services[0].Networks[0])
		assert.Equal(t, core.NetworkInfo{
			Name:        "proxy",
			Aliases:     []string{"web", "app.internal"},
			IPv4Address: "172.20.0.5",
		}, services[0].Networks[1])
	})
}

func TestExtractEnvironment(t *testing.T) {
	t.Run("mapping form keeps source order", func(t *testing.T) {
		services := parse(t, `services:
  app:
    environment:
      ZEBRA: "1"
      APPLE: "2"
      NULLED:
`)
		require.Len(t, services, 1)
		assert.Equal(t, []core.EnvVar{
			{Key: "ZEBRA", Value: "1"},
			{Key: "APPLE", Value: "2"},
			{Key: "NULLED", Value: ""},
		}, services[0].Environment)
	})

	t.Run("sequence form", func(t *testing.T) {
		services := parse(t, `services:
  app:
    environment:
      - TZ=UTC
      - EXTRA=a=b
      - PASSTHROUGH
`)
		require.Len(t, services, 1)
		assert.Equal(t, []core.EnvVar{
			{Key: "TZ", Value: "UTC"},
			{Key: "EXTRA", Value: "a=b"},
			{Key: "PASSTHROUGH", Value: ""},
		}, services[0].Environment)
	})
}

func TestExtractExtras(t *testing.T) {
	services := parse(t, `services:
  app:
    image: nginx
    restart: unless-stopped
    hostname: web01
    container_name: app
    depends_on:
      - db
      - cache
    deploy:
      resources:
        limits:
          cpus: "0.5"
          memory: 512M
        reservations:
          memory: 128M
`)
	require.Len(t, services, 1)
	assert.Equal(t, []core.EnvVar{
		{Key: "restart", Value: "unless-stopped"},
		{Key: "hostname", Value: "web01"},
		{Key: "container_name", Value: "app"},
		{Key: "depends_on", Value: "db, cache"},
		{Key: "deploy.resources", Value: "limits: cpus=0.5, memory=512M; reservations: memory=128M"},
	}, services[0].Extras)
}

func TestExtractExtrasDependsOnMapping(t *testing.T) {
	services := parse(t, `services:
  app:
    depends_on:
      db:
        condition: service_healthy
`)
	require.Len(t, services, 1)
	assert.Equal(t, []core.EnvVar{
		{Key: "depends_on", Value: "db"},
	}, services[0].Extras)
}
