// Package redact classifies environment keys as sensitive and rewrites a
// compose document to hide their values, anonymizing home-directory paths
// along the way.
package redact

import "regexp"

// DefaultPatterns is the built-in sensitive-key pattern list. Patterns are
// matched case-insensitively as regex searches, not full matches, unless
// anchored. User-overridable via the config subsystem.
func DefaultPatterns() []string {
	return []string{
		`passw(or)?d`,
		`^pw$`,
		`[_.]pass(w)?$`,
		`^pass[_.]?`,
		`secret`,
		`token`,
		`api[_\-.:]?key`,
		`auth`,
		`credential`,
		`private[_\-.]?key`,
		`vpn[_\-.]?user`,
	}
}

// DefaultSafeKeys is the built-in allowlist of common non-secret infra env
// vars. The safelist always wins over pattern matches.
func DefaultSafeKeys() []string {
	return []string{
		"PUID", "PGID", "TZ", "UMASK", "UMASK_SET",
		"HOME", "PATH", "LANG", "LC_ALL",
		"LOG_LEVEL", "WEBUI_PORT",
	}
}

// emailRE matches an embedded email address: local part, @, dotted domain,
// 2+ letter TLD. Purely syntactic.
var emailRE = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// homeDirRE matches a leading home-directory prefix of a path or
// "source:target" volume string.
var homeDirRE = regexp.MustCompile(`^(/home/[^/]+|~|/root)/`)

// ContainsEmail reports whether value contains an email-shaped substring.
func ContainsEmail(value string) bool {
	return emailRE.MatchString(value)
}

// AnonymizeHomePath rewrites a leading /home/<user>/ or /root/ prefix to ~/.
// Strings without such a prefix are returned unchanged.
func AnonymizeHomePath(s string) string {
	return homeDirRE.ReplaceAllString(s, "~/")
}
