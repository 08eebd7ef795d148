// Package extract isolates the YAML region inside pasted console output,
// stripping shell prompts, command echoes, and log banners around the actual
// compose document.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bakerboy448/compose-sanitizer/core"
)

// ErrNoInput is returned for empty input.
var ErrNoInput = errors.New("No input provided. Paste your Docker Compose YAML or console output.")

// ErrNoYAML is returned when trimming leaves nothing behind.
var ErrNoYAML = errors.New("No valid YAML found. Make sure you copied the full output.")

// ErrNotCompose is returned when the extracted region parses to something
// other than a mapping.
var ErrNotCompose = errors.New("Input does not appear to be a Docker Compose file. Expected a YAML mapping at root level.")

// yamlStartRE matches a line that plausibly begins a compose document: a
// recognized root key followed by ':' or whitespace, or an x- extension key.
var yamlStartRE = regexp.MustCompile(`^(?:(?:version|services|name|networks|volumes)[\s:]|x-)`)

// shellPrefixRE matches shell command echoes.
var shellPrefixRE = regexp.MustCompile(`^[$#>]\s|^(sudo\s|docker\s|podman\s)`)

// terminalPromptRE matches a user@host prompt line.
var terminalPromptRE = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+[:\s~$#]`)

// Extract returns the YAML substring of raw. Downstream stages re-parse the
// returned text; Extract only validates that it parses to a mapping.
func Extract(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrNoInput
	}

	lines := strings.Split(trimmed, "\n")

	startIdx := findYAMLStart(lines)
	if startIdx >= 0 {
		lines = lines[startIdx:]
	}
	// No recognizable start key: keep everything, it may still be bare YAML.

	lines = trimTrailingPrompts(lines)
	if len(lines) == 0 {
		return "", ErrNoYAML
	}

	yamlStr := strings.Join(lines, "\n")

	_, err := core.Parse(yamlStr)
	switch {
	case err == nil:
		return yamlStr, nil
	case errors.Is(err, core.ErrNotMapping):
		return "", ErrNotCompose
	default:
		// If lines were discarded at the top, truncation is the likely cause.
		hint := "Did you copy the full output?"
		if startIdx > 0 {
			hint = "Make sure you copied the full output."
		}
		return "", fmt.Errorf("Invalid YAML: %v. %s", err, hint)
	}
}

func findYAMLStart(lines []string) int {
	for i, line := range lines {
		if yamlStartRE.MatchString(line) || strings.HasPrefix(line, "---") {
			return i
		}
	}
	return -1
}

// trimTrailingPrompts drops trailing lines that look like terminal prompts,
// shell command echoes, or blanks, stopping at the first line that is none
// of those.
func trimTrailingPrompts(lines []string) []string {
	end := len(lines)
	for end > 0 {
		line := strings.TrimSpace(lines[end-1])
		if line == "" || terminalPromptRE.MatchString(line) || shellPrefixRE.MatchString(line) {
			end--
			continue
		}
		break
	}
	return lines[:end]
}
