// Package sanitize runs the full pipeline over raw pasted text: input
// ceiling, YAML extraction, secret redaction, noise stripping, advisory
// detection, and service model building.
package sanitize

import (
	"errors"
	"fmt"

	"github.com/bakerboy448/compose-sanitizer/advisory"
	"github.com/bakerboy448/compose-sanitizer/core"
	"github.com/bakerboy448/compose-sanitizer/extract"
	"github.com/bakerboy448/compose-sanitizer/noise"
	"github.com/bakerboy448/compose-sanitizer/redact"
	"github.com/bakerboy448/compose-sanitizer/services"
)

// MaxInputBytes is the hard input-size ceiling, checked before any
// processing.
const MaxInputBytes = 512 * 1024

// ErrTooLarge is returned for input above MaxInputBytes.
var ErrTooLarge = errors.New("Input too large. The limit is 512 KiB.")

// Run sanitizes raw text with the given config and returns the result. The
// first hard error before or during redaction halts the pipeline. After a
// successful redaction the remaining stages degrade gracefully: if the
// redacted text fails to re-parse, it is returned as-is with no advisories
// or service model.
func Run(raw string, cfg redact.Config) (*core.Result, error) {
	if len(raw) > MaxInputBytes {
		return nil, ErrTooLarge
	}

	yamlText, err := extract.Extract(raw)
	if err != nil {
		return nil, err
	}

	redacted, stats, err := redact.Compose(yamlText, redact.New(cfg))
	if err != nil {
		if errors.Is(err, core.ErrNotMapping) {
			return nil, errors.New("Input is not a valid Docker Compose file (expected a YAML mapping at root level)")
		}
		return nil, fmt.Errorf("Invalid YAML: %v", err)
	}

	result := &core.Result{Output: redacted, Stats: stats}

	// Extraction already parsed this text once, so a failure here signals an
	// inconsistency; show the redacted output and skip the rest.
	doc, err := core.Parse(redacted)
	if err != nil {
		return result, nil
	}

	cleaned := noise.Strip(doc)
	output, err := cleaned.Serialize()
	if err != nil {
		return result, nil
	}

	result.Output = output
	result.Advisories = advisory.Detect(cleaned)
	result.Services = services.Parse(cleaned)
	return result, nil
}
