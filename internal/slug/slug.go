// Package slug derives filesystem-safe record keys from human-readable fields.
package slug

import "strings"

// Make converts text to a URL- and filename-friendly slug: lower-case,
// characters outside [a-z0-9], space, and hyphen stripped, whitespace and
// hyphen runs collapsed to a single hyphen, no leading or trailing hyphen.
// Make is idempotent.
func Make(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '-':
			b.WriteByte('-')
		}
	}

	// Collapse hyphen runs and trim the edges.
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}

// ForGear builds the gear record key from manufacturer and model name,
// e.g. ("BOSS", "BD-2 Blues Driver") -> "boss-bd-2-blues-driver".
func ForGear(manufacturer, name string) string {
	return Make(manufacturer) + "-" + Make(name)
}

// ForDated builds the key for date-prefixed kinds (live events, media items),
// e.g. ("2025-10-11", "Noise Space XV") -> "2025-10-11-noise-space-xv".
// The date is expected to already be in YYYY-MM-DD form.
func ForDated(date, title string) string {
	return date + "-" + Make(title)
}
