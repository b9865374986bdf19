package manganews

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mangacat/internal/normalize"
	"mangacat/pkg/models"
)

// SearchHit is one search-result row.
type SearchHit struct {
	Title string
	URL   string
}

var (
	dateFrRe    = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	pageCountRe = regexp.MustCompile(`(?i)(\d+)\s*pages`)
)

// ParseSearchResults pulls volume/series links out of a search page.
func ParseSearchResults(html []byte) []SearchHit {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}

	var hits []SearchHit
	seen := map[string]bool{}
	doc.Find("a[href*='/index.php/manga/'], a[href*='/index.php/serie/']").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Text())
		href := s.AttrOr("href", "")
		if title == "" || href == "" || seen[href] {
			return
		}
		seen[href] = true
		hits = append(hits, SearchHit{Title: title, URL: href})
	})
	return hits
}

// FirstVolumeLink returns the first volume link of a search page, "" when
// the page holds none.
func FirstVolumeLink(html []byte) string {
	for _, h := range ParseSearchResults(html) {
		if strings.Contains(h.URL, "/index.php/manga/") {
			return h.URL
		}
	}
	return ""
}

// ParseVolumeDetail extracts a volume page: title, ISBN (13-digit preferred,
// 10-digit fallback), release date normalized DD/MM/YYYY -> YYYY-MM-DD,
// full-size cover, synopsis, publisher, page count. Fields are independent;
// a missing one never blocks the others.
func ParseVolumeDetail(html []byte) (*models.ExternalRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	rec := &models.ExternalRecord{SourceName: SourceName}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h2").First().Text())
	}
	rec.Title = normalize.CollapseSpaces(title)
	rec.VolumeNumber = normalize.ExtractVolumeNumber(rec.Title)

	pageText := doc.Text()
	rec.ISBN = normalize.FindISBN(pageText)

	if m := dateFrRe.FindStringSubmatch(pageText); m != nil {
		rec.ReleaseInfo = m[3] + "-" + m[2] + "-" + m[1]
	}
	if m := pageCountRe.FindStringSubmatch(pageText); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			rec.PageCount = n
		}
	}

	if img := doc.Find("#image_couverture, .bigcover img, .cover img, img[src*='/mangas/']").First(); img.Length() > 0 {
		rec.CoverImageURL = upgradeCover(img.AttrOr("src", ""))
	}

	if d := doc.Find("#summary, .bigsize, .description").First(); d.Length() > 0 {
		rec.Synopsis = strings.TrimSpace(d.Text())
	}

	doc.Find("li, .entryInfos div").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		idx := strings.Index(text, ":")
		if idx <= 0 || idx == len(text)-1 {
			return
		}
		label := strings.TrimSpace(text[:idx])
		value := strings.TrimSpace(text[idx+1:])
		if value == "" {
			return
		}
		switch {
		case strings.HasPrefix(label, "Éditeur"), strings.HasPrefix(label, "Editeur"):
			if rec.Publisher == "" {
				rec.Publisher = value
			}
		case strings.HasPrefix(label, "Dessin"):
			rec.Staff = append(rec.Staff, models.StaffCredit{Name: value, Role: "Dessin"})
		case strings.HasPrefix(label, "Scénario"), strings.HasPrefix(label, "Scenario"):
			rec.Staff = append(rec.Staff, models.StaffCredit{Name: value, Role: "Scénario"})
		}
	})

	if rec.Title == "" && rec.ISBN == "" && rec.Synopsis == "" {
		return nil, nil
	}
	return rec, nil
}

// upgradeCover swaps the thumbnail path segment for the full-size one.
func upgradeCover(src string) string {
	if src == "" {
		return ""
	}
	src = strings.Replace(src, "/mini/", "/", 1)
	src = strings.Replace(src, "_m.", ".", 1)
	if strings.HasPrefix(src, "/") {
		return defaultBaseURL + src
	}
	return src
}
