package catalog

import "strings"

// Slugify derives a taxonomy id from a label: ASCII letters and digits
// are kept and upper-cased, runs of anything else collapse to a single
// underscore. "eSIM Premium" becomes "ESIM_PREMIUM". Ids are immutable
// after creation, so collisions are rejected upstream rather than
// auto-suffixed.
func Slugify(label string) string {
	var b strings.Builder
	lastUnderscore := true // suppress leading underscore
	for _, r := range strings.ToUpper(strings.TrimSpace(label)) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}
