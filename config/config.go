// Package config persists the sanitizer's pattern/safelist settings through
// a small key-value store. Invalid stored data never surfaces as an error;
// it falls back to defaults, field by field.
package config

import (
	"encoding/json"

	"github.com/bakerboy448/compose-sanitizer/redact"
)

// storageKey is the single key the sanitizer uses in the store.
const storageKey = "compose-sanitizer-config"

// blob is the JSON shape of the persisted config. Exactly two fields are
// recognized; unknown fields are ignored.
type blob struct {
	SensitivePatterns []string `json:"sensitivePatterns"`
	SafeKeys          []string `json:"safeKeys"`
}

// Load reads the persisted config. A missing key or unparseable blob falls
// back to the full defaults; a wrong-typed field falls back for that field
// only. Never an error.
func Load(store Store) redact.Config {
	cfg := redact.DefaultConfig()

	raw, ok := store.Get(storageKey)
	if !ok {
		return cfg
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return cfg
	}
	if v, ok := decodeStrings(fields["sensitivePatterns"]); ok {
		cfg.Patterns = v
	}
	if v, ok := decodeStrings(fields["safeKeys"]); ok {
		cfg.SafeKeys = v
	}
	return cfg
}

func decodeStrings(raw json.RawMessage) ([]string, bool) {
	if raw == nil {
		return nil, false
	}
	var v []string
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// Save persists cfg to the store.
func Save(store Store, cfg redact.Config) error {
	b := blob{SensitivePatterns: cfg.Patterns, SafeKeys: cfg.SafeKeys}
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return store.Set(storageKey, string(data))
}

// Reset removes the persisted config and returns the defaults.
func Reset(store Store) (redact.Config, error) {
	if err := store.Remove(storageKey); err != nil {
		return redact.Config{}, err
	}
	return redact.DefaultConfig(), nil
}
