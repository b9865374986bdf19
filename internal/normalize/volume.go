package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Ordered alternatives for volume numbering in titles; first match wins.
var volumePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\btome\s*(\d+)\b`),
	regexp.MustCompile(`(?i)\bvol\.?\s*(\d+)\b`),
	regexp.MustCompile(`(?i)\bvolume\s*(\d+)\b`),
	regexp.MustCompile(`(?i)\bt\.?\s*(\d+)\b`),
	regexp.MustCompile(`(\d+)巻`),
	regexp.MustCompile(`#(\d+)\b`),
}

// ExtractVolumeNumber pulls a volume number out of a book title.
// Returns 0 when no pattern matches.
func ExtractVolumeNumber(title string) int {
	for _, re := range volumePatterns {
		if m := re.FindStringSubmatch(title); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

// StripVolumeSuffix removes a trailing volume marker so that
// "One Piece, tome 42" and "One Piece Vol. 3" both compare as "One Piece".
// The title is returned unchanged when nothing is stripped or when stripping
// would leave an empty string.
func StripVolumeSuffix(title string) string {
	base := CollapseSpaces(title)
	for _, re := range volumePatterns {
		loc := re.FindStringIndex(base)
		if loc == nil {
			continue
		}
		stripped := CollapseSpaces(strings.TrimRight(base[:loc[0]], " ,:-–"))
		if stripped != "" {
			return stripped
		}
	}
	return base
}

var (
	isbnJunkRe = regexp.MustCompile(`[\s-]`)
	isbn13Re   = regexp.MustCompile(`^97[89]\d{10}$`)
	isbn10Re   = regexp.MustCompile(`^\d{9}[\dXx]$`)
	isbn13Scan = regexp.MustCompile(`97[89][\d-]{10,16}`)
	isbn10Scan = regexp.MustCompile(`\b\d{9}[\dXx]\b`)
)

// CleanISBN strips spaces and dashes from an ISBN candidate.
func CleanISBN(s string) string {
	return isbnJunkRe.ReplaceAllString(strings.TrimSpace(s), "")
}

// ValidISBN reports whether s is a plausible ISBN-10 or ISBN-13 once cleaned.
// Checksum is not verified: scraped pages misprint them often enough that a
// strict check would reject real books.
func ValidISBN(s string) bool {
	c := CleanISBN(s)
	return isbn13Re.MatchString(c) || isbn10Re.MatchString(c)
}

// FindISBN scans free text for an ISBN, preferring 13-digit forms over
// 10-digit ones. Returns "" when nothing plausible is found.
func FindISBN(text string) string {
	for _, m := range isbn13Scan.FindAllString(text, -1) {
		if c := CleanISBN(m); isbn13Re.MatchString(c) {
			return c
		}
	}
	if m := isbn10Scan.FindString(text); m != "" {
		return CleanISBN(m)
	}
	return ""
}
