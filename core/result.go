package core

// Stats counts what one redaction pass changed. Counters reset per
// invocation.
type Stats struct {
	RedactedEnvVars int `json:"redacted_env_vars"`
	RedactedEmails  int `json:"redacted_emails"`
	AnonymizedPaths int `json:"anonymized_paths"`
}

// AdvisoryType tags an advisory kind. One kind exists today; the type is
// open for extension.
type AdvisoryType string

// AdvisoryHardlinks flags split media-library mounts that break hardlinking.
const AdvisoryHardlinks AdvisoryType = "hardlinks"

// Advisory is a structured warning about a configuration anti-pattern,
// distinct from a hard error.
type Advisory struct {
	Type     AdvisoryType `json:"type"`
	Message  string       `json:"message"`
	Link     string       `json:"link"`
	Services []string     `json:"services"`
}

// EnvVar is one environment entry. A slice of these is an ordered mapping;
// insertion order is source order.
type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NetworkInfo describes one network attachment of a service.
type NetworkInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	IPv4Address string   `json:"ipv4_address,omitempty"`
}

// ServiceInfo is the canonical per-service record produced by the service
// model builder. Never mutated after construction.
type ServiceInfo struct {
	Name        string        `json:"name"`
	Image       string        `json:"image,omitempty"`
	Ports       []string      `json:"ports,omitempty"`
	Volumes     []string      `json:"volumes,omitempty"`
	Networks    []NetworkInfo `json:"networks,omitempty"`
	Environment []EnvVar      `json:"environment,omitempty"`
	Extras      []EnvVar      `json:"extras,omitempty"`
}

// Result is the output of one sanitize invocation: the cleaned YAML text plus
// everything the presentation layer needs. When the redacted text failed to
// re-parse, Output still carries the redacted YAML and Advisories/Services
// are empty.
type Result struct {
	Output     string        `json:"output"`
	Stats      Stats         `json:"stats"`
	Advisories []Advisory    `json:"advisories,omitempty"`
	Services   []ServiceInfo `json:"services,omitempty"`
}
