// Package googlebooks queries the Google Books volumes API and filters the
// results down to actual manga. Google Books indexes everything with an
// ISBN, so the classification filter (classify.go) is strict: a book is
// manga only on positive evidence, never by default.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mangacat/internal/normalize"
	"mangacat/internal/provider"
	"mangacat/pkg/models"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1"
	maxPageSize    = 40
	maxSearchPages = 3

	SourceName = "googlebooks"
)

type Source struct {
	BaseURL string
	// Lang restricts results ("fr" or "en") and selects the publisher roster
	// the classifier uses.
	Lang   string
	Client *http.Client
}

func New(lang string) *Source {
	return &Source{
		BaseURL: defaultBaseURL,
		Lang:    lang,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *Source) Name() string { return SourceName }

type gbResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []gbItem `json:"items"`
}

type gbItem struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title               string   `json:"title"`
		Subtitle            string   `json:"subtitle"`
		Authors             []string `json:"authors"`
		Publisher           string   `json:"publisher"`
		PublishedDate       string   `json:"publishedDate"`
		Description         string   `json:"description"`
		PageCount           int      `json:"pageCount"`
		Categories          []string `json:"categories"`
		Language            string   `json:"language"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
		ImageLinks struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
		InfoLink string `json:"infoLink"`
	} `json:"volumeInfo"`
}

// FetchByISBN looks one ISBN up. Non-manga volumes are rejected by the
// classifier and reported as "no result".
func (s *Source) FetchByISBN(ctx context.Context, isbn string) (*models.ExternalRecord, error) {
	items, err := s.query(ctx, "isbn:"+normalize.CleanISBN(isbn), 1, 0)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if IsManga(it.VolumeInfo.Publisher, it.VolumeInfo.Title, it.VolumeInfo.Description, it.VolumeInfo.Categories, s.Lang) {
			rec := s.toRecord(it)
			return &rec, nil
		}
	}
	return nil, nil
}

// SearchByTitle free-text searches, keeping only classified manga. The API
// caps a page at 40 items, so the classifier's rejects are refilled from
// following pages (startIndex) up to maxSearchPages.
func (s *Source) SearchByTitle(ctx context.Context, query string, limit int) ([]models.ExternalRecord, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	var out []models.ExternalRecord
	for page := 0; page < maxSearchPages && len(out) < limit; page++ {
		items, err := s.query(ctx, query, maxPageSize, page*maxPageSize)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if len(out) == limit {
				break
			}
			if IsManga(it.VolumeInfo.Publisher, it.VolumeInfo.Title, it.VolumeInfo.Description, it.VolumeInfo.Categories, s.Lang) {
				out = append(out, s.toRecord(it))
			}
		}
		if len(items) < maxPageSize {
			break
		}
	}
	return out, nil
}

func (s *Source) query(ctx context.Context, q string, limit, start int) ([]gbItem, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	u, err := url.Parse(base + "/volumes")
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}
	qs := u.Query()
	qs.Set("q", q)
	qs.Set("printType", "books")
	qs.Set("maxResults", fmt.Sprintf("%d", limit))
	if start > 0 {
		qs.Set("startIndex", fmt.Sprintf("%d", start))
	}
	if s.Lang != "" {
		qs.Set("langRestrict", s.Lang)
	}
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

	var gr gbResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, provider.Errf(SourceName, "parse", err)
	}
	return gr.Items, nil
}

func (s *Source) toRecord(it gbItem) models.ExternalRecord {
	vi := it.VolumeInfo

	rec := models.ExternalRecord{
		SourceName:   SourceName,
		SourceID:     it.ID,
		Title:        vi.Title,
		Synopsis:     vi.Description,
		Publisher:    vi.Publisher,
		PageCount:    vi.PageCount,
		ReleaseInfo:  vi.PublishedDate,
		OfficialSite: vi.InfoLink,
		VolumeNumber: normalize.ExtractVolumeNumber(vi.Title + " " + vi.Subtitle),
	}

	for _, id := range vi.IndustryIdentifiers {
		if id.Type == "ISBN_13" {
			rec.ISBN = id.Identifier
			break
		}
		if id.Type == "ISBN_10" && rec.ISBN == "" {
			rec.ISBN = id.Identifier
		}
	}

	if vi.ImageLinks.Thumbnail != "" {
		rec.CoverImageURL = vi.ImageLinks.Thumbnail
	} else {
		rec.CoverImageURL = vi.ImageLinks.SmallThumbnail
	}

	for _, a := range vi.Authors {
		rec.Staff = append(rec.Staff, models.StaffCredit{Name: a, Role: "Auteur"})
	}
	rec.Genres = vi.Categories

	return rec
}
