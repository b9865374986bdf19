// Package openlibrary fetches book records by ISBN. It is the second-tier
// bibliographic fallback behind Google Books: less metadata, but it answers
// for out-of-print volumes Google no longer lists.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mangacat/internal/normalize"
	"mangacat/internal/provider"
	"mangacat/pkg/models"
)

const (
	defaultBaseURL  = "https://openlibrary.org"
	defaultCoverURL = "https://covers.openlibrary.org"

	SourceName = "openlibrary"
)

type Source struct {
	BaseURL  string
	CoverURL string
	Client   *http.Client
}

func New() *Source {
	return &Source{
		BaseURL:  defaultBaseURL,
		CoverURL: defaultCoverURL,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *Source) Name() string { return SourceName }

type olEdition struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	NumberOfPages int      `json:"number_of_pages"`
	PublishDate   string   `json:"publish_date"`
	Publishers    []string `json:"publishers"`
	Covers        []int    `json:"covers"`
	ByStatements  string   `json:"by_statement"`
	Description   any      `json:"description"` // string or {"type","value"}
}

// FetchByISBN resolves one edition. A 404 is "no result", not an error.
func (s *Source) FetchByISBN(ctx context.Context, isbn string) (*models.ExternalRecord, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	u := fmt.Sprintf("%s/isbn/%s.json", base, normalize.CleanISBN(isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, provider.Errf(SourceName, "fetch", fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var ed olEdition
	if err := json.NewDecoder(resp.Body).Decode(&ed); err != nil {
		return nil, provider.Errf(SourceName, "parse", err)
	}
	if ed.Title == "" {
		return nil, nil
	}

	rec := models.ExternalRecord{
		SourceName:   SourceName,
		Title:        ed.Title,
		ISBN:         normalize.CleanISBN(isbn),
		PageCount:    ed.NumberOfPages,
		ReleaseInfo:  ed.PublishDate,
		Synopsis:     descriptionText(ed.Description),
		VolumeNumber: normalize.ExtractVolumeNumber(ed.Title + " " + ed.Subtitle),
	}
	if len(ed.Publishers) > 0 {
		rec.Publisher = ed.Publishers[0]
	}
	if by := strings.TrimSpace(ed.ByStatements); by != "" {
		rec.Staff = append(rec.Staff, models.StaffCredit{Name: by, Role: "Auteur"})
	}
	if len(ed.Covers) > 0 && ed.Covers[0] > 0 {
		cover := s.CoverURL
		if cover == "" {
			cover = defaultCoverURL
		}
		rec.CoverImageURL = fmt.Sprintf("%s/b/id/%d-L.jpg", cover, ed.Covers[0])
	}
	return &rec, nil
}

// descriptionText unwraps OpenLibrary's two description encodings.
func descriptionText(v any) string {
	switch d := v.(type) {
	case string:
		return strings.TrimSpace(d)
	case map[string]any:
		if s, ok := d["value"].(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
