// Package nautiljon scrapes nautiljon.com. The site has no API: season
// listings and search results are HTML, served reluctantly, so the adapter
// leans on the shared httpx policy (browser UA, inter-request delay, cache,
// bounded retry) and treats every page as untrusted input.
package nautiljon

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
	defaultBaseURL = "https://www.nautiljon.com"

	SourceName = "nautiljon"
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

// SearchByTitle scrapes the anime search listing and enriches the first hit
// with its detail page. Later hits stay shallow (title + link); one detail
// fetch per query keeps us inside the site's tolerance.
func (s *Source) SearchByTitle(ctx context.Context, query string, limit int) ([]models.ExternalRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	u := fmt.Sprintf("%s/animes/?q=%s", s.base(), url.QueryEscape(query))

	html, err := s.Client.Get(ctx, u)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}

	hits, err := ParseSearchResults(html)
	if err != nil {
		return nil, provider.Errf(SourceName, "parse", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]models.ExternalRecord, 0, len(hits))
	for i, h := range hits {
		rec := models.ExternalRecord{
			SourceName:    SourceName,
			SourceID:      h.URL,
			Title:         h.Title,
			CoverImageURL: h.CoverURL,
		}
		if i == 0 && h.URL != "" {
			if detail := s.fetchDetail(ctx, h.URL); detail != nil {
				detail.SourceName = SourceName
				detail.SourceID = h.URL
				if detail.Title == "" {
					detail.Title = h.Title
				}
				if detail.CoverImageURL == "" {
					detail.CoverImageURL = h.CoverURL
				}
				rec = *detail
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// fetchDetail is best effort: a failed or unparseable detail page degrades
// to the shallow search record.
func (s *Source) fetchDetail(ctx context.Context, pageURL string) *models.ExternalRecord {
	full := pageURL
	if strings.HasPrefix(full, "/") {
		full = s.base() + full
	}
	html, err := s.Client.Get(ctx, full)
	if err != nil {
		return nil
	}
	rec, err := ParseAnimeDetail(html)
	if err != nil {
		return nil
	}
	return rec
}

// FetchSeasonTitles scrapes a season listing page (e.g.
// /animes/hiver-2026.html) and returns the raw titles it advertises.
func (s *Source) FetchSeasonTitles(ctx context.Context, seasonURL string) ([]string, error) {
	if strings.HasPrefix(seasonURL, "/") {
		seasonURL = s.base() + seasonURL
	}
	html, err := s.Client.Get(ctx, seasonURL)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}
	titles := ParseSeasonListing(html)
	if len(titles) == 0 {
		return nil, nil
	}
	return titles, nil
}

// SeasonURL builds the conventional listing path for a season/year pair.
func (s *Source) SeasonURL(season string, year int) string {
	return fmt.Sprintf("%s/animes/%s-%d.html", s.base(), strings.ToLower(normalize.StripDiacritics(season)), year)
}
