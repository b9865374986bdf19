// Package anilist queries the AniList GraphQL API.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mangacat/internal/provider"
	"mangacat/pkg/models"
)

const (
	defaultEndpoint = "https://graphql.anilist.co"

	// SourceName is the identity used in merge priority lists.
	SourceName = "anilist"
)

// Source is the AniList adapter. MediaType selects ANIME (season listings)
// or MANGA (ISBN enrichment); everything else is shared.
type Source struct {
	Endpoint  string
	MediaType string // "ANIME" or "MANGA"
	Client    *http.Client
}

// NewAnime returns an adapter searching anime entries.
func NewAnime() *Source {
	return &Source{
		Endpoint:  defaultEndpoint,
		MediaType: "ANIME",
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewManga returns an adapter searching manga entries.
func NewManga() *Source {
	s := NewAnime()
	s.MediaType = "MANGA"
	return s
}

func (s *Source) Name() string { return SourceName }

const mediaFields = `
	id
	title { romaji english native }
	description(asHtml: false)
	coverImage { extraLarge large }
	episodes
	volumes
	genres
	tags { name }
	startDate { year month day }
	staff { edges { role node { name { full } } } }
	characters(sort: ROLE, perPage: 12) {
		edges {
			role
			node { name { full } }
			voiceActors(language: JAPANESE) { name { full } }
		}
	}
	studios { nodes { name isAnimationStudio } }
	externalLinks { site type url }
	siteUrl`

var searchQuery = fmt.Sprintf(`query ($search: String, $type: MediaType, $perPage: Int) {
	Page(page: 1, perPage: $perPage) {
		media(search: $search, type: $type) {%s
		}
	}
}`, mediaFields)

var byIDQuery = fmt.Sprintf(`query ($id: Int, $type: MediaType) {
	Media(id: $id, type: $type) {%s
	}
}`, mediaFields)

// SearchByTitle returns up to limit records for query. GraphQL-level errors
// from the API are logged and reported as "no result", never propagated.
func (s *Source) SearchByTitle(ctx context.Context, query string, limit int) ([]models.ExternalRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	payload := map[string]any{
		"query": searchQuery,
		"variables": map[string]any{
			"search":  query,
			"type":    s.mediaType(),
			"perPage": limit,
		},
	}

	var res struct {
		Data struct {
			Page struct {
				Media []alMedia `json:"media"`
			} `json:"Page"`
		} `json:"data"`
		Errors []alError `json:"errors"`
	}
	if err := s.post(ctx, payload, &res); err != nil {
		return nil, err
	}
	if len(res.Errors) > 0 {
		log.Printf("[anilist] api error for %q: %s", query, res.Errors[0].Message)
		return nil, nil
	}

	out := make([]models.ExternalRecord, 0, len(res.Data.Page.Media))
	for _, m := range res.Data.Page.Media {
		out = append(out, m.toRecord())
	}
	return out, nil
}

// FetchByID fetches one media entry by numeric AniList id.
func (s *Source) FetchByID(ctx context.Context, id string) (*models.ExternalRecord, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return nil, provider.Errf(SourceName, "fetch", fmt.Errorf("non-numeric anilist id %q", id))
	}
	payload := map[string]any{
		"query": byIDQuery,
		"variables": map[string]any{
			"id":   n,
			"type": s.mediaType(),
		},
	}

	var res struct {
		Data struct {
			Media *alMedia `json:"Media"`
		} `json:"data"`
		Errors []alError `json:"errors"`
	}
	if err := s.post(ctx, payload, &res); err != nil {
		return nil, err
	}
	if len(res.Errors) > 0 {
		// AniList reports "Not Found" as a GraphQL error
		log.Printf("[anilist] api error for id %s: %s", id, res.Errors[0].Message)
		return nil, nil
	}
	if res.Data.Media == nil {
		return nil, nil
	}
	rec := res.Data.Media.toRecord()
	return &rec, nil
}

func (s *Source) mediaType() string {
	if s.MediaType == "" {
		return "ANIME"
	}
	return s.MediaType
}

func (s *Source) post(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return provider.Errf(SourceName, "fetch", fmt.Errorf("marshal query: %w", err))
	}

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return provider.Errf(SourceName, "fetch", fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return provider.Errf(SourceName, "fetch", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.Errf(SourceName, "fetch", fmt.Errorf("read body: %w", err))
	}
	// AniList returns GraphQL errors with non-2xx statuses too; decode either way.
	if err := json.Unmarshal(b, out); err != nil {
		return provider.Errf(SourceName, "parse", fmt.Errorf("decode (status %d): %w", resp.StatusCode, err))
	}
	return nil
}

type alError struct {
	Message string `json:"message"`
}

type alMedia struct {
	ID    int `json:"id"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	Description string `json:"description"`
	CoverImage  struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
	} `json:"coverImage"`
	Episodes int      `json:"episodes"`
	Volumes  int      `json:"volumes"`
	Genres   []string `json:"genres"`
	Tags     []struct {
		Name string `json:"name"`
	} `json:"tags"`
	StartDate struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Day   int `json:"day"`
	} `json:"startDate"`
	Staff struct {
		Edges []struct {
			Role string `json:"role"`
			Node struct {
				Name struct {
					Full string `json:"full"`
				} `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"staff"`
	Characters struct {
		Edges []struct {
			Role string `json:"role"`
			Node struct {
				Name struct {
					Full string `json:"full"`
				} `json:"name"`
			} `json:"node"`
			VoiceActors []struct {
				Name struct {
					Full string `json:"full"`
				} `json:"name"`
			} `json:"voiceActors"`
		} `json:"edges"`
	} `json:"characters"`
	Studios struct {
		Nodes []struct {
			Name              string `json:"name"`
			IsAnimationStudio bool   `json:"isAnimationStudio"`
		} `json:"nodes"`
	} `json:"studios"`
	ExternalLinks []struct {
		Site string `json:"site"`
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"externalLinks"`
	SiteURL string `json:"siteUrl"`
}

func (m alMedia) toRecord() models.ExternalRecord {
	rec := models.ExternalRecord{
		SourceName:    SourceName,
		SourceID:      fmt.Sprintf("%d", m.ID),
		Title:         m.Title.Romaji,
		OriginalTitle: m.Title.Native,
		EnglishTitle:  m.Title.English,
		Synopsis:      stripHTML(m.Description),
		Genres:        m.Genres,
	}
	if rec.Title == "" {
		rec.Title = m.Title.English
	}

	if m.CoverImage.ExtraLarge != "" {
		rec.CoverImageURL = m.CoverImage.ExtraLarge
	} else {
		rec.CoverImageURL = m.CoverImage.Large
	}

	if m.Episodes > 0 {
		rec.EpisodeOrVolumeCount = m.Episodes
	} else if m.Volumes > 0 {
		rec.EpisodeOrVolumeCount = m.Volumes
	}

	if m.StartDate.Year > 0 {
		rec.ReleaseInfo = fmt.Sprintf("%04d-%02d-%02d", m.StartDate.Year, m.StartDate.Month, m.StartDate.Day)
	}

	for _, t := range m.Tags {
		if t.Name != "" {
			rec.Themes = append(rec.Themes, t.Name)
		}
	}

	for _, e := range m.Staff.Edges {
		if e.Node.Name.Full == "" {
			continue
		}
		rec.Staff = append(rec.Staff, models.StaffCredit{Name: e.Node.Name.Full, Role: e.Role})
	}

	for _, e := range m.Characters.Edges {
		role := strings.TrimSpace(e.Role)
		if !strings.EqualFold(role, "MAIN") && !strings.EqualFold(role, "SUPPORTING") {
			continue
		}
		va := ""
		if len(e.VoiceActors) > 0 {
			va = e.VoiceActors[0].Name.Full
		}
		rec.Characters = append(rec.Characters, models.CharacterCredit{
			Name:       e.Node.Name.Full,
			Role:       canonicalCharacterRole(role),
			VoiceActor: va,
		})
	}

	for _, n := range m.Studios.Nodes {
		if n.IsAnimationStudio && n.Name != "" {
			rec.Studios = append(rec.Studios, n.Name)
		}
	}

	for _, l := range m.ExternalLinks {
		if strings.EqualFold(l.Type, "OFFICIAL") || strings.EqualFold(l.Site, "Official Site") {
			rec.OfficialSite = l.URL
			break
		}
	}

	return rec
}

func canonicalCharacterRole(role string) string {
	if strings.EqualFold(role, "MAIN") {
		return "Main"
	}
	return "Supporting"
}

var htmlTagReplacer = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "<i>", "", "</i>", "", "<b>", "", "</b>", "", "<em>", "", "</em>", "")

// stripHTML removes the light formatting AniList embeds in descriptions.
func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagReplacer.Replace(s))
}
