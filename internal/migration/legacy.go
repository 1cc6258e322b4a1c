package migration

import "strings"

const legacyPrefix = "mov:"

// CanonicalTitleID strips the legacy record-key prefix. The second result
// reports whether the id was in the legacy form.
func CanonicalTitleID(id string) (string, bool) {
	if !strings.HasPrefix(id, legacyPrefix) {
		return id, false
	}
	return strings.TrimPrefix(id, legacyPrefix), true
}
