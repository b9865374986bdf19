package googlebooks

import "strings"

// Publisher rosters and keyword lists for the manga classifier. Matching is
// case-insensitive substring on the publisher string, since Google Books is
// inconsistent about imprints ("Glénat", "Glenat Manga", "Éditions Glénat").

var frenchMangaPublishers = []string{
	"glénat", "glenat",
	"kana",
	"pika",
	"kurokawa",
	"ki-oon",
	"soleil manga",
	"delcourt",
	"tonkam",
	"panini manga",
	"kazé", "kaze manga",
	"akata",
	"ototo",
	"doki-doki", "doki doki",
	"vega",
	"mangetsu",
	"meian",
	"nobi nobi",
	"komikku",
	"taifu",
	"casterman sakka", "sakka",
}

var englishMangaPublishers = []string{
	"viz media", "viz",
	"kodansha",
	"yen press",
	"dark horse manga", "dark horse",
	"seven seas",
	"square enix manga", "square enix books",
	"vertical",
	"tokyopop",
	"udon entertainment",
	"shueisha",
	"shogakukan",
	"denpa",
	"j-novel club",
}

// Publishers that never publish manga but share shelf space with it in
// Google Books results (romance imprints, children's books, novel houses).
var nonMangaPublishers = []string{
	"harlequin",
	"hachette romans",
	"gallimard jeunesse",
	"pocket jeunesse",
	"le livre de poche",
	"j'ai lu",
	"bragelonne",
	"scholastic",
	"penguin",
	"harpercollins",
	"random house",
	"createspace",
	"independently published",
	"books on demand",
	"lulu.com",
}

// Title/description keywords that mark a book as *about* manga or otherwise
// not a manga volume.
var nonMangaKeywords = []string{
	"coloring book",
	"livre de coloriage",
	"how to draw",
	"apprendre à dessiner",
	"artbook",
	"art book",
	"official fanbook",
	"guide officiel",
	"roman", // light novels are shelved as "roman" in FR listings
	"novel",
	"journal intime",
	"notebook",
	"carnet",
	"agenda",
	"calendar",
	"calendrier",
	"encyclopédie",
	"dictionnaire",
}

// IsManga decides whether a Google Books volume is a manga volume.
//
// Order matters and default is reject:
//  1. a known non-manga publisher always excludes, whatever the title says
//  2. a non-manga keyword in title/description excludes
//  3. a known manga publisher (per-language roster) includes
//  4. a category mentioning manga / comics & graphic novels includes
//  5. otherwise: not manga
func IsManga(publisher, title, description string, categories []string, lang string) bool {
	pub := strings.ToLower(publisher)
	for _, bad := range nonMangaPublishers {
		if pub != "" && strings.Contains(pub, bad) {
			return false
		}
	}

	haystack := strings.ToLower(title + " " + description)
	for _, kw := range nonMangaKeywords {
		if containsWord(haystack, kw) {
			return false
		}
	}

	roster := englishMangaPublishers
	if strings.EqualFold(lang, "fr") {
		roster = frenchMangaPublishers
	}
	for _, good := range roster {
		if pub != "" && strings.Contains(pub, good) {
			return true
		}
	}

	for _, c := range categories {
		lc := strings.ToLower(c)
		if strings.Contains(lc, "manga") || strings.Contains(lc, "comics & graphic novels") {
			return true
		}
	}

	return false
}

// containsWord is a crude word-boundary check so "roman" does not reject
// "Romance Dawn".
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || !isWordChar(haystack[start-1])
		afterOK := end >= len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
