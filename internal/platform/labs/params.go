// Package labs holds the lab-result primitives shared by the evolution,
// dashboard and score engines: parameter identity resolution, unit
// canonicalization and permissive numeric parsing of free-text values.
package labs

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultFallbackOffset is the base of the hashed-ID band used when a
// parameter name is not in the known table.
const DefaultFallbackOffset = 1000

// knownParameterIDs maps accent-insensitive slugs of well-known clinical
// parameters to their fixed numeric identities.
var knownParameterIDs = map[string]int{
	"hemoglobina": 1,
	"rdw":         2,
	"leucocitos":  3,
	"leucocito":   3,
	"plaquetas":   4,
	"hematocrito": 5,
	"glicemia":    6,
	"hba1c":       7,
	"tsh":         8,
	"t4livre":     9,
	"creatinina":  10,
	"ureia":       11,
}

// Slug normalizes a parameter name to its comparison form: NFD decomposition,
// combining marks stripped, lowercased, non-alphanumerics removed. "Hemoglobína"
// and "HEMOGLOBINA" both slug to "hemoglobina".
func Slug(name string) string {
	decomposed := norm.NFD.String(name)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveParameterID derives a stable numeric identity for a lab parameter
// name, so the same physiological parameter reported under slightly different
// textual names across exams is recognized as one series. Known parameters get
// their fixed table ID; anything else falls back to a deterministic rolling
// hash banded into [fallbackOffset, fallbackOffset+9000). Hash collisions
// inside a band are accepted; the 9000-wide space keeps them rare for a single
// patient's parameter set.
func ResolveParameterID(name string, fallbackOffset int) int {
	slug := Slug(name)
	if id, ok := knownParameterIDs[slug]; ok {
		return id
	}
	var h uint32
	for _, c := range slug {
		h = h*31 + uint32(c)
	}
	return fallbackOffset + int(h%9000)
}
