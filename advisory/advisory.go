// Package advisory inspects a cleaned compose document for known
// anti-patterns and emits structured warnings.
package advisory

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bakerboy448/compose-sanitizer/core"
)

// mediaContainerPaths are well-known media-library root mounts. Mounting
// them separately (instead of one unified root) breaks hardlinking between
// download and library directories.
var mediaContainerPaths = map[string]bool{
	"/tv": true, "/movies": true, "/series": true,
	"/music": true, "/books": true, "/anime": true,
}

const (
	hardlinksMessage = "Separate /tv, /movies etc. mounts prevent hardlinks. Consider a unified media root mount."
	hardlinksLink    = "https://trash-guides.info/Hardlinks/Hardlinks-and-Instant-Moves/"
)

// Detect returns the advisories for a cleaned document, in a deterministic
// order. At most one advisory per kind; affected services are listed in
// encounter order.
func Detect(d *core.Document) []core.Advisory {
	services := core.MapGet(d.Root, "services")
	if !core.IsMapping(services) {
		return nil
	}

	var affected []string
	for _, svc := range core.MapEntries(services) {
		if !core.IsMapping(svc.Value) {
			continue
		}
		if hasMediaMount(core.MapGet(svc.Value, "volumes")) {
			affected = append(affected, svc.Key.Value)
		}
	}
	if len(affected) == 0 {
		return nil
	}

	return []core.Advisory{{
		Type:     core.AdvisoryHardlinks,
		Message:  hardlinksMessage,
		Link:     hardlinksLink,
		Services: affected,
	}}
}

// hasMediaMount reports whether any volume entry's container-side path
// exactly equals one of the known media roots. String entries use the second
// colon segment; long-form entries use the target field.
func hasMediaMount(volumes *yaml.Node) bool {
	for _, item := range core.SequenceItems(volumes) {
		if s, ok := core.ScalarString(item); ok {
			if mediaContainerPaths[containerPath(s)] {
				return true
			}
			continue
		}
		if core.IsMapping(item) {
			if target, ok := core.ScalarString(core.MapGet(item, "target")); ok && mediaContainerPaths[target] {
				return true
			}
		}
	}
	return false
}

// containerPath returns the second colon segment of a short-form volume
// string, dropping any trailing mode suffix.
func containerPath(vol string) string {
	parts := strings.Split(vol, ":")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
