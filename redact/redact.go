package redact

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bakerboy448/compose-sanitizer/core"
)

// Marker replaces sensitive values in the output.
const Marker = "**REDACTED**"

// Config controls which keys the Redactor treats as sensitive.
type Config struct {
	// Patterns are regex sources matched case-insensitively against env keys.
	Patterns []string
	// SafeKeys are exact-match key names (case-insensitive) that are never
	// redacted, regardless of pattern matches.
	SafeKeys []string
}

// DefaultConfig returns the built-in pattern list and safelist.
func DefaultConfig() Config {
	return Config{Patterns: DefaultPatterns(), SafeKeys: DefaultSafeKeys()}
}

// Redactor applies the redaction rules to a compose document in place.
type Redactor struct {
	patterns []*regexp.Regexp
	safeKeys map[string]bool
	skipped  []string
	stats    core.Stats
}

// New compiles a Redactor from the given config. Invalid regex sources are
// dropped, never fatal; the dropped sources are retained for Skipped.
func New(cfg Config) *Redactor {
	r := &Redactor{safeKeys: make(map[string]bool, len(cfg.SafeKeys))}
	for _, src := range cfg.Patterns {
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			r.skipped = append(r.skipped, src)
			continue
		}
		r.patterns = append(r.patterns, re)
	}
	for _, key := range cfg.SafeKeys {
		r.safeKeys[strings.ToUpper(key)] = true
	}
	return r
}

// Skipped returns the pattern sources that failed to compile.
func (r *Redactor) Skipped() []string { return r.skipped }

// Stats returns the counters from the most recent Transform.
func (r *Redactor) Stats() core.Stats { return r.stats }

// IsSensitiveKey reports whether key should be redacted: false when the
// upper-cased key is on the safelist, otherwise true when any pattern matches
// anywhere in the key.
func (r *Redactor) IsSensitiveKey(key string) bool {
	if r.safeKeys[strings.ToUpper(key)] {
		return false
	}
	for _, re := range r.patterns {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// Transform implements core.Transformer. It rewrites each service's
// environment and volumes; every other field passes through unchanged. Stats
// are reset at the start of each call.
func (r *Redactor) Transform(d *core.Document) error {
	r.stats = core.Stats{}
	services := core.MapGet(d.Root, "services")
	for _, svc := range core.MapEntries(services) {
		if !core.IsMapping(svc.Value) {
			continue
		}
		r.redactEnvironment(core.MapGet(svc.Value, "environment"))
		r.anonymizeVolumes(core.MapGet(svc.Value, "volumes"))
	}
	return nil
}

func (r *Redactor) redactEnvironment(env *yaml.Node) {
	switch {
	case core.IsMapping(env):
		for _, e := range core.MapEntries(env) {
			r.redactEnvEntry(e.Key.Value, e.Value)
		}
	case core.IsSequence(env):
		for _, item := range core.SequenceItems(env) {
			r.redactEnvItem(item)
		}
	}
}

// redactEnvEntry handles one mapping-form entry. Key names are never
// redacted; an empty value stays empty and is not counted.
func (r *Redactor) redactEnvEntry(key string, value *yaml.Node) {
	str, ok := core.Stringify(value)
	if !ok {
		return
	}
	if r.IsSensitiveKey(key) {
		if str == "" {
			return
		}
		core.SetScalar(value, Marker, yaml.SingleQuotedStyle)
		r.stats.RedactedEnvVars++
		return
	}
	if ContainsEmail(str) {
		core.SetScalar(value, Marker, yaml.SingleQuotedStyle)
		r.stats.RedactedEmails++
	}
}

// redactEnvItem handles one sequence-form "KEY=VALUE" entry. Entries without
// "=" denote a host env passthrough and carry no literal value, so they are
// never modified even when the name looks sensitive.
func (r *Redactor) redactEnvItem(item *yaml.Node) {
	str, ok := core.ScalarString(item)
	if !ok {
		return
	}
	eq := strings.Index(str, "=")
	if eq < 0 {
		return
	}
	key, value := str[:eq], str[eq+1:]
	if r.IsSensitiveKey(key) {
		if value == "" {
			return
		}
		core.SetScalar(item, key+"="+Marker, item.Style)
		r.stats.RedactedEnvVars++
		return
	}
	if ContainsEmail(value) {
		core.SetScalar(item, key+"="+Marker, item.Style)
		r.stats.RedactedEmails++
	}
}

// anonymizeVolumes rewrites the source portion of each volume entry. Targets
// and modes are untouched; the home-dir pattern is anchored so a combined
// "source:target" string is only rewritten at the start.
func (r *Redactor) anonymizeVolumes(volumes *yaml.Node) {
	for _, item := range core.SequenceItems(volumes) {
		if str, ok := core.ScalarString(item); ok {
			if anon := AnonymizeHomePath(str); anon != str {
				core.SetScalar(item, anon, item.Style)
				r.stats.AnonymizedPaths++
			}
			continue
		}
		if core.IsMapping(item) {
			source := core.MapGet(item, "source")
			if str, ok := core.ScalarString(source); ok {
				if anon := AnonymizeHomePath(str); anon != str {
					core.SetScalar(source, anon, source.Style)
					r.stats.AnonymizedPaths++
				}
			}
		}
	}
}

// Compose parses yamlText, applies the redactor, and re-serializes. Parse
// failure and a non-mapping root are the only hard errors.
func Compose(yamlText string, r *Redactor) (string, core.Stats, error) {
	doc, err := core.Parse(yamlText)
	if err != nil {
		return "", core.Stats{}, err
	}
	if err := core.Chain(doc, r); err != nil {
		return "", core.Stats{}, err
	}
	out, err := doc.Serialize()
	if err != nil {
		return "", core.Stats{}, err
	}
	return out, r.Stats(), nil
}
