// Package normalize produces the title variants used for catalog matching.
// Everything here is pure: same input, same output, no errors.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	trailingParenRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

	seasonOrdinalRe = regexp.MustCompile(`(?i)\b(\d+)(?:st|nd|rd|th)\s+season\b`)
	seasonWordRe    = regexp.MustCompile(`(?i)\bseason\s+(\d+)\b`)
	trailingOrdRe   = regexp.MustCompile(`(?i)\s(\d+)(?:st|nd|rd|th)\s*$`)
)

// Variants expands a raw title into the set of strings the catalog matcher
// should try. The set always contains the (whitespace-collapsed) original;
// each rule contributes independently and duplicates are dropped. Order is
// deterministic: original first, then rule outputs in rule order.
func Variants(raw string) []string {
	base := CollapseSpaces(raw)
	if base == "" {
		return nil
	}

	out := []string{base}
	seen := map[string]bool{base: true}
	add := func(v string) {
		v = CollapseSpaces(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	add(Bare(base))
	add(trailingParenRe.ReplaceAllString(base, ""))

	for _, v := range seasonRewrites(base) {
		add(v)
	}

	// Colons and dashes often differ between sources and the catalog.
	add(strings.NewReplacer(":", " ").Replace(base))
	add(strings.NewReplacer("-", " ", "–", " ").Replace(base))

	return out
}

// seasonRewrites generates the pairwise season-numbering equivalences:
// "2nd Season" <=> "Season 2" <=> "2nd" <=> "2". Empty when no season
// numbering is detected.
func seasonRewrites(s string) []string {
	var span []int
	var n string

	if m := seasonOrdinalRe.FindStringSubmatchIndex(s); m != nil {
		span, n = m[0:2], s[m[2]:m[3]]
	} else if m := seasonWordRe.FindStringSubmatchIndex(s); m != nil {
		span, n = m[0:2], s[m[2]:m[3]]
	} else if m := trailingOrdRe.FindStringSubmatchIndex(s); m != nil {
		// keep the leading space out of the replaced span
		span, n = []int{m[0] + 1, m[1]}, s[m[2]:m[3]]
	} else {
		return nil
	}

	forms := []string{
		ordinal(n) + " Season",
		"Season " + n,
		ordinal(n),
		n,
	}

	out := make([]string, 0, len(forms))
	for _, f := range forms {
		out = append(out, s[:span[0]]+f+s[span[1]:])
	}
	return out
}

func ordinal(n string) string {
	suffix := "th"
	if !strings.HasSuffix(n, "11") && !strings.HasSuffix(n, "12") && !strings.HasSuffix(n, "13") {
		switch n[len(n)-1] {
		case '1':
			suffix = "st"
		case '2':
			suffix = "nd"
		case '3':
			suffix = "rd"
		}
	}
	return n + suffix
}

// CollapseSpaces trims and folds repeated whitespace into single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Bare strips everything outside letters/digits/spaces, after folding
// diacritics ("Gunnm Édition" -> "Gunnm Edition").
func Bare(s string) string {
	s = StripDiacritics(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return CollapseSpaces(b.String())
}

// CleanKey converts a title to the canonical comparison form: lowercase,
// diacritics folded, non-alphanumerics collapsed to single spaces. Two titles
// with equal keys are considered the same work for grouping purposes.
func CleanKey(s string) string {
	return strings.ToLower(Bare(s))
}

var diacriticsStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripDiacritics removes combining marks: "Glénat" -> "Glenat".
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticsStripper, s)
	if err != nil {
		return s
	}
	return out
}

// StripTrailingParen removes a trailing parenthetical annotation such as
// "(TV)" or "(2024)".
func StripTrailingParen(s string) string {
	return CollapseSpaces(trailingParenRe.ReplaceAllString(s, ""))
}

// SeasonEquivalent reports whether a and b normalize to the same title once
// season numbering forms are unified.
func SeasonEquivalent(a, b string) bool {
	ka, kb := CleanKey(a), CleanKey(b)
	if ka == kb {
		return true
	}
	for _, va := range Variants(a) {
		for _, vb := range Variants(b) {
			if CleanKey(va) == CleanKey(vb) {
				return true
			}
		}
	}
	return false
}
