package config

import "strings"

var defaultCORSOrigins = [...]string{
	"http://localhost:3000",
	"http://172.20.10.2:3000",
}

// DefaultCORSOrigins returns a fresh copy on every call.
func DefaultCORSOrigins() []string {
	out := make([]string, len(defaultCORSOrigins))
	copy(out, defaultCORSOrigins[:])
	return out
}

// CORSOrigins parses a comma-separated origin list. Entries are trimmed and
// empty ones dropped; a blank list, or one with no usable entries, yields
// the defaults.
func CORSOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return DefaultCORSOrigins()
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if o := strings.TrimSpace(part); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return DefaultCORSOrigins()
	}
	return out
}
