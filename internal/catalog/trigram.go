package catalog

import (
	"strings"

	"mangacat/internal/normalize"
)

// trigrams returns the padded trigram set of a string, postgres pg_trgm
// style: lowercase, diacritics folded, two leading spaces and one trailing
// space per word so short strings still produce a usable set.
func trigrams(s string) map[string]struct{} {
	s = normalize.CleanKey(normalize.StripDiacritics(s))
	set := map[string]struct{}{}
	if s == "" {
		return set
	}
	for _, word := range strings.Fields(s) {
		padded := "  " + word + " "
		for i := 0; i+3 <= len(padded); i++ {
			set[padded[i:i+3]] = struct{}{}
		}
	}
	return set
}

// Similarity is shared-trigrams over union-trigrams, in [0, 1].
func Similarity(a, b string) float64 {
	ta, tb := trigrams(a), trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}
