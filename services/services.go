// Package services normalizes the heterogeneous per-service shapes of a
// cleaned compose document into canonical ServiceInfo records.
package services

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bakerboy448/compose-sanitizer/core"
)

// Parse builds the canonical service list from a cleaned document, sorted by
// name ascending. Returns an empty list when services is missing or not a
// mapping; non-mapping service entries are skipped. The input document is
// never mutated.
func Parse(d *core.Document) []core.ServiceInfo {
	servicesNode := core.MapGet(d.Root, "services")
	if !core.IsMapping(servicesNode) {
		return nil
	}

	var result []core.ServiceInfo
	for _, svc := range core.MapEntries(servicesNode) {
		if !core.IsMapping(svc.Value) {
			continue
		}
		result = append(result, parseService(svc.Key.Value, svc.Value))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func parseService(name string, svc *yaml.Node) core.ServiceInfo {
	image, _ := core.ScalarString(core.MapGet(svc, "image"))
	return core.ServiceInfo{
		Name:        name,
		Image:       image,
		Ports:       normalizePorts(core.MapGet(svc, "ports")),
		Volumes:     normalizeVolumes(core.MapGet(svc, "volumes")),
		Networks:    extractNetworks(core.MapGet(svc, "networks")),
		Environment: extractEnvironment(core.MapGet(svc, "environment")),
		Extras:      extractExtras(svc),
	}
}

// normalizePort renders one port entry as "[host_ip:]published:target[/protocol]".
// Scalar entries pass through as their string form.
func normalizePort(entry *yaml.Node) string {
	if s, ok := core.Stringify(entry); ok {
		return s
	}
	if !core.IsMapping(entry) {
		return ""
	}
	published, _ := core.Stringify(core.MapGet(entry, "published"))
	target, _ := core.Stringify(core.MapGet(entry, "target"))
	hostIP, _ := core.ScalarString(core.MapGet(entry, "host_ip"))
	protocol, _ := core.ScalarString(core.MapGet(entry, "protocol"))

	hostPart := published
	if hostIP != "" {
		hostPart = hostIP + ":" + published
	}
	base := hostPart + ":" + target
	if protocol != "" {
		return base + "/" + protocol
	}
	return base
}

func normalizePorts(ports *yaml.Node) []string {
	items := core.SequenceItems(ports)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = normalizePort(item)
	}
	return out
}

// normalizeVolume renders one volume entry. String entries pass through
// verbatim; long-form entries become "source:target" with ":ro" appended
// when read_only is literally true.
func normalizeVolume(entry *yaml.Node) string {
	if s, ok := core.Stringify(entry); ok {
		return s
	}
	if !core.IsMapping(entry) {
		return ""
	}
	source, _ := core.Stringify(core.MapGet(entry, "source"))
	target, _ := core.Stringify(core.MapGet(entry, "target"))
	base := source + ":" + target
	if ro, ok := core.ScalarString(core.MapGet(entry, "read_only")); ok && ro == "true" {
		return base + ":ro"
	}
	return base
}

func normalizeVolumes(volumes *yaml.Node) []string {
	items := core.SequenceItems(volumes)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = normalizeVolume(item)
	}
	return out
}

// extractNetworks supports both the sequence form (bare names) and the
// mapping form (name → config with optional aliases and ipv4_address). The
// result is sorted by name regardless of input order or form.
func extractNetworks(networks *yaml.Node) []core.NetworkInfo {
	var out []core.NetworkInfo

	switch {
	case core.IsSequence(networks):
		for _, item := range core.SequenceItems(networks) {
			name, _ := core.Stringify(item)
			out = append(out, core.NetworkInfo{Name: name})
		}
	case core.IsMapping(networks):
		for _, e := range core.MapEntries(networks) {
			info := core.NetworkInfo{Name: e.Key.Value}
			if core.IsMapping(e.Value) {
				for _, alias := range core.SequenceItems(core.MapGet(e.Value, "aliases")) {
					if s, ok := core.Stringify(alias); ok {
						info.Aliases = append(info.Aliases, s)
					}
				}
				info.IPv4Address, _ = core.ScalarString(core.MapGet(e.Value, "ipv4_address"))
			}
			out = append(out, info)
		}
	default:
		return nil
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// extractEnvironment normalizes both env forms into an ordered key→value
// list; insertion order is source order. Null mapping values and sequence
// entries without "=" map to the empty string.
func extractEnvironment(env *yaml.Node) []core.EnvVar {
	var out []core.EnvVar

	switch {
	case core.IsMapping(env):
		for _, e := range core.MapEntries(env) {
			value, _ := core.Stringify(e.Value)
			out = append(out, core.EnvVar{Key: e.Key.Value, Value: value})
		}
	case core.IsSequence(env):
		for _, item := range core.SequenceItems(env) {
			s, ok := core.Stringify(item)
			if !ok {
				continue
			}
			if eq := strings.Index(s, "="); eq >= 0 {
				out = append(out, core.EnvVar{Key: s[:eq], Value: s[eq+1:]})
			} else {
				out = append(out, core.EnvVar{Key: s})
			}
		}
	}
	return out
}

// extractExtras derives the fixed set of miscellaneous display fields.
func extractExtras(svc *yaml.Node) []core.EnvVar {
	var extras []core.EnvVar

	for _, key := range []string{"restart", "hostname", "container_name"} {
		if value, ok := core.Stringify(core.MapGet(svc, key)); ok && value != "" {
			extras = append(extras, core.EnvVar{Key: key, Value: value})
		}
	}

	dependsOn := core.MapGet(svc, "depends_on")
	switch {
	case core.IsSequence(dependsOn):
		var names []string
		for _, item := range core.SequenceItems(dependsOn) {
			name, _ := core.Stringify(item)
			names = append(names, name)
		}
		extras = append(extras, core.EnvVar{Key: "depends_on", Value: strings.Join(names, ", ")})
	case core.IsMapping(dependsOn):
		var names []string
		for _, e := range core.MapEntries(dependsOn) {
			names = append(names, e.Key.Value)
		}
		extras = append(extras, core.EnvVar{Key: "depends_on", Value: strings.Join(names, ", ")})
	}

	if resources := core.MapGet(core.MapGet(svc, "deploy"), "resources"); core.IsMapping(resources) {
		if formatted := formatResources(resources); formatted != "" {
			extras = append(extras, core.EnvVar{Key: "deploy.resources", Value: formatted})
		}
	}

	return extras
}

// formatResources renders deploy.resources as
// "section: field=value, field=value; section2: ..." in source order.
func formatResources(resources *yaml.Node) string {
	var sections []string
	for _, section := range core.MapEntries(resources) {
		if !core.IsMapping(section.Value) {
			continue
		}
		var fields []string
		for _, f := range core.MapEntries(section.Value) {
			value, _ := core.Stringify(f.Value)
			fields = append(fields, f.Key.Value+"="+value)
		}
		if len(fields) > 0 {
			sections = append(sections, section.Key.Value+": "+strings.Join(fields, ", "))
		}
	}
	return strings.Join(sections, "; ")
}
