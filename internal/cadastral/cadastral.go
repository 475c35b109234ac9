// Package cadastral normalizes and validates cadastral parcel numbers.
// Two formats are accepted: the current 4-group form
// "AA:BB:CCCCCCC:DDDD" and the legacy 6-group form "AA:BB:CCCCCCC:DD:E:F".
// The package is pure — no I/O, no state.
package cadastral

import (
	"regexp"
	"strings"
)

var (
	// \s only covers ASCII whitespace; \p{Z} picks up Unicode separators
	// such as NBSP that copy-pasted cadastral numbers tend to carry.
	whitespace = regexp.MustCompile(`[\s\p{Z}]+`)

	// Group lengths: 2, 2, 6-7, 2-6.
	newFormat = regexp.MustCompile(`^\d{2}:\d{2}:\d{6,7}:\d{2,6}$`)
	// Group lengths: 2, 2, 6-7, 2, 1, 1.
	oldFormat = regexp.MustCompile(`^\d{2}:\d{2}:\d{6,7}:\d{2}:\d:\d$`)
)

// Normalize removes all whitespace from a cadastral number. Runs of
// whitespace are deleted outright, not collapsed into a single space.
// Normalize is idempotent.
func Normalize(value string) string {
	return whitespace.ReplaceAllString(value, "")
}

// IsValid reports whether value matches one of the two accepted formats.
// The value must already be normalized — callers run Normalize first.
func IsValid(value string) bool {
	if !strings.Contains(value, ":") {
		return false
	}
	switch strings.Count(value, ":") + 1 {
	case 4:
		return newFormat.MatchString(value)
	case 6:
		return oldFormat.MatchString(value)
	default:
		return false
	}
}
