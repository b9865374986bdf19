// Package jikan queries the Jikan REST mirror of MyAnimeList.
package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mangacat/internal/provider"
	"mangacat/pkg/models"
)

const (
	defaultBaseURL = "https://api.jikan.moe/v4"

	SourceName = "jikan"
)

type Source struct {
	BaseURL string
	Client  *http.Client
}

func New() *Source {
	return &Source{
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *Source) Name() string { return SourceName }

type jkResponse struct {
	Data []jkAnime `json:"data"`
}

type jkAnime struct {
	MalID    int    `json:"mal_id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	TitleEn  string `json:"title_english"`
	TitleJa  string `json:"title_japanese"`
	Synopsis string `json:"synopsis"`
	Episodes int    `json:"episodes"`
	Images   struct {
		JPG struct {
			LargeImageURL string `json:"large_image_url"`
			ImageURL      string `json:"image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Aired struct {
		String string `json:"string"`
	} `json:"aired"`
	Genres  []jkNamed `json:"genres"`
	Themes  []jkNamed `json:"themes"`
	Studios []jkNamed `json:"studios"`
}

type jkNamed struct {
	Name string `json:"name"`
}

// SearchByTitle queries /anime?q=...&limit=... . An empty data array is a
// normal outcome, not an error.
func (s *Source) SearchByTitle(ctx context.Context, query string, limit int) ([]models.ExternalRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	u, err := url.Parse(base + "/anime")
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}
	qs := u.Query()
	qs.Set("q", query)
	qs.Set("limit", fmt.Sprintf("%d", limit))
	u.RawQuery = qs.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, provider.Errf(SourceName, "fetch", fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var jr jkResponse
	if err := json.NewDecoder(resp.Body).Decode(&jr); err != nil {
		return nil, provider.Errf(SourceName, "parse", err)
	}

	out := make([]models.ExternalRecord, 0, len(jr.Data))
	for _, a := range jr.Data {
		out = append(out, a.toRecord())
	}
	return out, nil
}

func (a jkAnime) toRecord() models.ExternalRecord {
	rec := models.ExternalRecord{
		SourceName:           SourceName,
		SourceID:             fmt.Sprintf("%d", a.MalID),
		Title:                a.Title,
		OriginalTitle:        a.TitleJa,
		EnglishTitle:         a.TitleEn,
		Synopsis:             a.Synopsis,
		EpisodeOrVolumeCount: a.Episodes,
		ReleaseInfo:          a.Aired.String,
		OfficialSite:         a.URL,
	}

	if a.Images.JPG.LargeImageURL != "" {
		rec.CoverImageURL = a.Images.JPG.LargeImageURL
	} else {
		rec.CoverImageURL = a.Images.JPG.ImageURL
	}

	for _, g := range a.Genres {
		if g.Name != "" {
			rec.Genres = append(rec.Genres, g.Name)
		}
	}
	for _, t := range a.Themes {
		if t.Name != "" {
			rec.Themes = append(rec.Themes, t.Name)
		}
	}
	for _, st := range a.Studios {
		if st.Name != "" {
			rec.Studios = append(rec.Studios, st.Name)
		}
	}
	return rec
}
