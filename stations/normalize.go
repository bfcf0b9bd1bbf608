package stations

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// German umlauts fold to their digraph spellings first, so "München" and
// "Muenchen" normalize to the same string. Everything else just loses its
// combining marks.
var umlauts = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ß", "ss",
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a station name for comparison: umlauts transliterated,
// remaining diacritics stripped, lowercased, whitespace collapsed.
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, umlauts.Replace(norm.NFC.String(s)))
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
