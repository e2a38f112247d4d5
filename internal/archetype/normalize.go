package archetype

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// sectorFolder strips combining marks so that accented sector labels
// ("café", "foncière") compare equal to their ASCII forms.
var sectorFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeSector lowercases, trims, and removes diacritics from a free-text
// sector label so keyword matching is accent- and case-insensitive.
func normalizeSector(sector string) string {
	s := strings.ToLower(strings.TrimSpace(sector))
	folded, _, err := transform.String(sectorFolder, s)
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(folded), " ")
}
