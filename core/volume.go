package core

import (
	"sort"
	"strings"
)

// volumeModes is the recognized vocabulary of short-form volume mode options.
var volumeModes = map[string]bool{
	"ro": true, "rw": true, "z": true, "Z": true,
	"shared": true, "slave": true, "private": true,
	"rshared": true, "rslave": true, "rprivate": true,
	"consistent": true, "cached": true, "delegated": true, "nocopy": true,
}

// isVolumeMode reports whether segment is a comma-joined list of recognized
// mode options.
func isVolumeMode(segment string) bool {
	if segment == "" {
		return false
	}
	for _, opt := range strings.Split(segment, ",") {
		if !volumeModes[opt] {
			return false
		}
	}
	return true
}

// ParsedVolume is the decomposed form of a short-syntax volume string.
type ParsedVolume struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Mode   string `json:"mode,omitempty"`
}

// ParseVolume splits a "source:target[:mode]" string. The mode segment is
// recognized only when every option is in the known vocabulary, so Windows
// drive letters and targets containing colons survive.
func ParseVolume(vol string) ParsedVolume {
	parts := strings.Split(vol, ":")
	if len(parts) >= 3 {
		last := parts[len(parts)-1]
		if isVolumeMode(last) {
			return ParsedVolume{
				Source: strings.Join(parts[:len(parts)-2], ":"),
				Target: parts[len(parts)-2],
				Mode:   last,
			}
		}
	}
	if len(parts) >= 2 {
		return ParsedVolume{Source: parts[0], Target: strings.Join(parts[1:], ":")}
	}
	return ParsedVolume{Source: vol}
}

// String re-joins the parsed form; ParseVolume(v.String()) == v for any mode
// drawn from the recognized vocabulary.
func (v ParsedVolume) String() string {
	s := v.Source + ":" + v.Target
	if v.Mode != "" {
		s += ":" + v.Mode
	}
	return s
}

// VolumeMapping is one service's use of a host path.
type VolumeMapping struct {
	Target string `json:"target"`
	Mode   string `json:"mode,omitempty"`
}

// VolumeMatrix is a read-only projection of service volumes: which services
// mount which host paths, and where. Rebuilt on demand, never persisted.
type VolumeMatrix struct {
	HostPaths []string                            `json:"host_paths"`
	Matrix    map[string]map[string]VolumeMapping `json:"matrix"`
}

// BuildVolumeMatrix projects the services' volume lists into a host-path
// matrix. Entries without both a source and a target are skipped. HostPaths
// is sorted and unique.
func BuildVolumeMatrix(services []ServiceInfo) VolumeMatrix {
	matrix := make(map[string]map[string]VolumeMapping)

	for _, svc := range services {
		for _, vol := range svc.Volumes {
			parsed := ParseVolume(vol)
			if parsed.Source == "" || parsed.Target == "" {
				continue
			}
			row := matrix[parsed.Source]
			if row == nil {
				row = make(map[string]VolumeMapping)
				matrix[parsed.Source] = row
			}
			row[svc.Name] = VolumeMapping{Target: parsed.Target, Mode: parsed.Mode}
		}
	}

	hostPaths := make([]string, 0, len(matrix))
	for path := range matrix {
		hostPaths = append(hostPaths, path)
	}
	sort.Strings(hostPaths)

	return VolumeMatrix{HostPaths: hostPaths, Matrix: matrix}
}
