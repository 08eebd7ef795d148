// Package noise removes vendor-injected and default-valued fields from a
// compose document, leaving only what a human authored.
package noise

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bakerboy448/compose-sanitizer/core"
)

// composeLabelPrefix marks labels injected by the compose orchestrator
// rather than authored by a human.
const composeLabelPrefix = "com.docker.compose."

// noiseEnvRE matches env keys that carry no information: init-system
// internals, locale/path defaults, shell and installer leftovers.
var noiseEnvRE = []*regexp.Regexp{
	regexp.MustCompile(`^S6_`),
	regexp.MustCompile(`^PATH$`),
	regexp.MustCompile(`^HOME$`),
	regexp.MustCompile(`^TERM$`),
	regexp.MustCompile(`^LANG(UAGE)?$`),
	regexp.MustCompile(`^LC_`),
	regexp.MustCompile(`^PS1$`),
	regexp.MustCompile(`^DEBIAN_FRONTEND$`),
}

// defaultFields maps service fields to the documented Docker default that
// makes them redundant.
var defaultFields = map[string]string{
	"ipc":         "private",
	"working_dir": "/",
}

// defaultEntrypoints is the set of known base-image default entrypoints,
// compared by exact match (bare string or single-element sequence).
var defaultEntrypoints = map[string]bool{
	"/init": true,
}

// Stripper removes noise fields from a document in place. It implements
// core.Transformer and is stateless; Strip is the pure-function form.
type Stripper struct{}

// Strip returns a cleaned copy of d. The input is never mutated, and
// Strip(Strip(x)) == Strip(x).
func Strip(d *core.Document) *core.Document {
	out := d.Clone()
	_ = (Stripper{}).Transform(out)
	return out
}

// Transform implements core.Transformer.
func (Stripper) Transform(d *core.Document) error {
	root := d.Root

	core.MapDelete(root, "version")
	core.MapDelete(root, "name")

	services := core.MapGet(root, "services")
	for _, svc := range core.MapEntries(services) {
		if core.IsMapping(svc.Value) {
			stripService(svc.Value)
		}
	}

	if networks := core.MapGet(root, "networks"); isDefaultOnlyNetwork(networks) {
		core.MapDelete(root, "networks")
	}
	if volumes := core.MapGet(root, "volumes"); core.IsMapping(volumes) && len(core.Resolve(volumes).Content) == 0 {
		core.MapDelete(root, "volumes")
	}

	return nil
}

func stripService(svc *yaml.Node) {
	stripComposeLabels(core.MapGet(svc, "labels"))
	stripEnvNoise(core.MapGet(svc, "environment"))

	for field, def := range defaultFields {
		if value, ok := core.ScalarString(core.MapGet(svc, field)); ok && value == def {
			core.MapDelete(svc, field)
		}
	}
	if isDefaultEntrypoint(core.MapGet(svc, "entrypoint")) {
		core.MapDelete(svc, "entrypoint")
	}

	// Last: drop whatever is now empty at the top level of the service
	// record (not deep).
	filterMapping(svc, func(_ string, value *yaml.Node) bool {
		return !core.IsEmptyValue(value)
	})
}

func stripComposeLabels(labels *yaml.Node) {
	switch {
	case core.IsMapping(labels):
		filterMapping(labels, func(key string, _ *yaml.Node) bool {
			return !strings.HasPrefix(key, composeLabelPrefix)
		})
	case core.IsSequence(labels):
		filterSequence(labels, func(item *yaml.Node) bool {
			s, ok := core.ScalarString(item)
			return !ok || !strings.HasPrefix(s, composeLabelPrefix)
		})
	}
}

func stripEnvNoise(env *yaml.Node) {
	switch {
	case core.IsMapping(env):
		filterMapping(env, func(key string, _ *yaml.Node) bool {
			return !isNoiseEnvKey(key)
		})
	case core.IsSequence(env):
		filterSequence(env, func(item *yaml.Node) bool {
			s, ok := core.ScalarString(item)
			if !ok {
				return true
			}
			key, value := s, ""
			hasValue := false
			if eq := strings.Index(s, "="); eq >= 0 {
				key, value = s[:eq], s[eq+1:]
				hasValue = true
			}
			if isNoiseEnvKey(key) {
				return false
			}
			// A "KEY=" with nothing after it says nothing either.
			return !hasValue || value != ""
		})
	}
}

func isNoiseEnvKey(key string) bool {
	for _, re := range noiseEnvRE {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

func isDefaultEntrypoint(entrypoint *yaml.Node) bool {
	if s, ok := core.ScalarString(entrypoint); ok {
		return defaultEntrypoints[s]
	}
	items := core.SequenceItems(entrypoint)
	if len(items) != 1 {
		return false
	}
	s, ok := core.ScalarString(items[0])
	return ok && defaultEntrypoints[s]
}

// isDefaultOnlyNetwork reports whether the root networks block is exactly the
// implicit "default" network Compose creates when none is declared: a single
// entry named default whose config has no non-null, non-false fields.
func isDefaultOnlyNetwork(networks *yaml.Node) bool {
	entries := core.MapEntries(networks)
	if len(entries) != 1 || entries[0].Key.Value != "default" {
		return false
	}
	cfg := entries[0].Value
	if core.IsNull(cfg) {
		return true
	}
	if !core.IsMapping(cfg) {
		return false
	}
	for _, e := range core.MapEntries(cfg) {
		if core.IsNull(e.Value) {
			continue
		}
		if s, ok := core.ScalarString(e.Value); ok && s == "false" && core.Resolve(e.Value).Tag == "!!bool" {
			continue
		}
		return false
	}
	return true
}

func filterMapping(n *yaml.Node, keep func(key string, value *yaml.Node) bool) {
	n = core.Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	content := n.Content[:0]
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode || keep(key.Value, value) {
			content = append(content, key, value)
		}
	}
	n.Content = content
}

func filterSequence(n *yaml.Node, keep func(item *yaml.Node) bool) {
	n = core.Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return
	}
	content := n.Content[:0]
	for _, item := range n.Content {
		if keep(item) {
			content = append(content, item)
		}
	}
	n.Content = content
}
