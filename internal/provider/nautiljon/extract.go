package nautiljon

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mangacat/internal/normalize"
	"mangacat/pkg/models"
)

// SearchHit is one row of a search listing, before any detail fetch.
type SearchHit struct {
	Title    string
	URL      string
	CoverURL string
}

// ParseSeasonListing extracts the raw titles from a season page.
//
// Primary pattern: container elements carrying the "elt" class, title anchor
// nested in a "title"-class element's heading. The markup is not API-stable,
// so when no container matches we fall back to a looser heading-anchor scan
// rather than failing. Titles are stripped of trailing parentheticals and
// de-duplicated by exact equality.
func ParseSeasonListing(html []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}

	var raw []string
	doc.Find("div.elt").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Find(".title h2 a").First().Text())
		if t == "" {
			t = strings.TrimSpace(s.Find(".title a").First().Text())
		}
		if t != "" {
			raw = append(raw, t)
		}
	})

	if len(raw) == 0 {
		// loose tier: any heading-wrapped anchor
		doc.Find("h2 a, h3 a").Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				raw = append(raw, t)
			}
		})
	}

	var out []string
	seen := map[string]bool{}
	for _, t := range raw {
		t = normalize.StripTrailingParen(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ParseSearchResults extracts search hits from an anime search page.
func ParseSearchResults(html []byte) ([]SearchHit, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	var hits []SearchHit
	collect := func(_ int, s *goquery.Selection) {
		a := s.Find("a[href*='/animes/']").First()
		title := strings.TrimSpace(a.Text())
		href := a.AttrOr("href", "")
		if title == "" || href == "" {
			return
		}
		hits = append(hits, SearchHit{
			Title:    normalize.StripTrailingParen(title),
			URL:      href,
			CoverURL: upgradeCover(s.Find("img").First().AttrOr("src", "")),
		})
	}

	doc.Find("div.elt").Each(collect)
	if len(hits) == 0 {
		doc.Find("table.search tr, tr.elt").Each(collect)
	}
	return hits, nil
}

var (
	episodesRe = regexp.MustCompile(`(?i)Nb\s+d['’]épisodes?\s*:?\s*(\d+)`)
	dateFrRe   = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
)

// ParseAnimeDetail extracts a structured record from an anime detail page.
// Every field has its own null-safe fallback; a page missing half its
// structure still yields whatever the other half holds.
func ParseAnimeDetail(html []byte) (*models.ExternalRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	rec := &models.ExternalRecord{SourceName: SourceName}

	rec.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	rec.Title = normalize.StripTrailingParen(rec.Title)

	if d := doc.Find(".description").First(); d.Length() > 0 {
		rec.Synopsis = strings.TrimSpace(d.Text())
	}

	if img := doc.Find(".image_fiche img, #onglets_3_couverture img, .cover img").First(); img.Length() > 0 {
		rec.CoverImageURL = upgradeCover(img.AttrOr("src", ""))
	}

	doc.Find("a[href*='/animes/genre/']").Each(func(_ int, s *goquery.Selection) {
		if g := strings.TrimSpace(s.Text()); g != "" {
			rec.Genres = append(rec.Genres, g)
		}
	})
	doc.Find("a[href*='/animes/theme/']").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			rec.Themes = append(rec.Themes, t)
		}
	})

	pageText := doc.Text()
	if m := episodesRe.FindStringSubmatch(pageText); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			rec.EpisodeOrVolumeCount = n
		}
	}
	if m := dateFrRe.FindStringSubmatch(pageText); m != nil {
		rec.ReleaseInfo = m[3] + "-" + m[2] + "-" + m[1]
	}

	// labeled info rows: "Réalisateur : X", "Studio d'animation : Y"
	doc.Find("li, .infos div").Each(func(_ int, s *goquery.Selection) {
		label, value := splitInfoRow(s.Text())
		if value == "" {
			return
		}
		switch {
		case strings.HasPrefix(label, "Titre original"):
			rec.OriginalTitle = value
		case strings.HasPrefix(label, "Titre alternatif"):
			if rec.EnglishTitle == "" {
				rec.EnglishTitle = value
			}
		case strings.HasPrefix(label, "Réalisateur"):
			rec.Staff = append(rec.Staff, models.StaffCredit{Name: value, Role: "Réalisateur"})
		case strings.HasPrefix(label, "Studio d'animation"), strings.HasPrefix(label, "Studio d’animation"):
			rec.Studios = append(rec.Studios, value)
		case strings.HasPrefix(label, "Site officiel"):
			rec.OfficialSite = value
		}
	})

	if rec.Title == "" && rec.Synopsis == "" && rec.CoverImageURL == "" {
		return nil, nil
	}
	return rec, nil
}

// splitInfoRow splits "Label : value" rows; returns empty value when the row
// does not look like one.
func splitInfoRow(text string) (label, value string) {
	text = strings.TrimSpace(text)
	idx := strings.Index(text, ":")
	if idx <= 0 || idx == len(text)-1 {
		return "", ""
	}
	return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+1:])
}

// upgradeCover rewrites thumbnail paths to the full-size image.
func upgradeCover(src string) string {
	if src == "" {
		return ""
	}
	src = strings.Replace(src, "/mini/", "/", 1)
	if strings.HasPrefix(src, "/") {
		return defaultBaseURL + src
	}
	return src
}
