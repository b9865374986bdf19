// Package manganews scrapes manga-news.com volume pages. It is the
// bibliographic fallback for French editions missing from Google Books and
// OpenLibrary, and shares the httpx scraping policy with nautiljon.
package manganews

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"mangacat/internal/httpx"
	"mangacat/internal/normalize"
	"mangacat/internal/provider"
	"mangacat/pkg/models"
)

const (
	defaultBaseURL = "https://www.manga-news.com"

	SourceName = "manganews"
)

type Source struct {
	BaseURL string
	Client  *httpx.Client
}

func New() *Source {
	return &Source{
		BaseURL: defaultBaseURL,
		Client:  httpx.New(),
	}
}

func (s *Source) Name() string { return SourceName }

func (s *Source) base() string {
	if s.BaseURL == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(s.BaseURL, "/")
}

// FetchByISBN searches the site for the ISBN and parses the first volume
// page the results link to. Either stage can miss; both report "no result".
func (s *Source) FetchByISBN(ctx context.Context, isbn string) (*models.ExternalRecord, error) {
	clean := normalize.CleanISBN(isbn)
	searchURL := fmt.Sprintf("%s/index.php/recherche/?q=%s", s.base(), url.QueryEscape(clean))

	html, err := s.Client.Get(ctx, searchURL)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}

	// the search may land directly on a volume page
	if rec, _ := ParseVolumeDetail(html); rec != nil && rec.ISBN == clean {
		rec.SourceID = searchURL
		return rec, nil
	}

	link := FirstVolumeLink(html)
	if link == "" {
		return nil, nil
	}
	if strings.HasPrefix(link, "/") {
		link = s.base() + link
	}

	page, err := s.Client.Get(ctx, link)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}
	rec, err := ParseVolumeDetail(page)
	if err != nil {
		return nil, provider.Errf(SourceName, "parse", err)
	}
	if rec == nil {
		return nil, nil
	}
	rec.SourceID = link
	if rec.ISBN == "" {
		rec.ISBN = clean
	}
	return rec, nil
}

// SearchByTitle scrapes the search results and returns shallow records.
func (s *Source) SearchByTitle(ctx context.Context, query string, limit int) ([]models.ExternalRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	searchURL := fmt.Sprintf("%s/index.php/recherche/?q=%s", s.base(), url.QueryEscape(query))

	html, err := s.Client.Get(ctx, searchURL)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}

	hits := ParseSearchResults(html)
	if len(hits) == 0 {
		return nil, nil
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]models.ExternalRecord, 0, len(hits))
	for _, h := range hits {
		out = append(out, models.ExternalRecord{
			SourceName:   SourceName,
			SourceID:     h.URL,
			Title:        h.Title,
			VolumeNumber: normalize.ExtractVolumeNumber(h.Title),
		})
	}
	return out, nil
}
