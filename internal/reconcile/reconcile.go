// Package reconcile orchestrates one reconciliation run: match each incoming
// title against the local catalog, fetch external metadata for the misses,
// merge per-source records into one creation-ready candidate, and annotate it
// with the controlled vocabulary. The package never writes to the catalog.
package reconcile

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mangacat/internal/merge"
	"mangacat/internal/normalize"
	"mangacat/internal/provider"
	"mangacat/internal/vocab"
	"mangacat/pkg/models"
)

// Matcher is the local catalog lookup the orchestrator depends on.
type Matcher interface {
	Match(ctx context.Context, raw string) (models.MatchCandidate, error)
	MatchISBN(ctx context.Context, isbn string) (models.MatchCandidate, error)
}

// SeasonLister turns a season listing page into raw titles.
type SeasonLister interface {
	FetchSeasonTitles(ctx context.Context, seasonURL string) ([]string, error)
	SeasonURL(season string, year int) string
}

// Orchestrator wires the matcher, the title sources and the bibliographic
// chain together. Zero-value concurrency and search limits get defaults.
type Orchestrator struct {
	Matcher Matcher

	// Sources answer free-text title searches, fanned out concurrently.
	Sources []provider.Searcher

	// ISBNChain is walked sequentially, first answer wins.
	ISBNChain []provider.ISBNFetcher

	// Enricher supplements an ISBN hit with catalog-grade metadata by
	// searching the title the bibliographic sources reported.
	Enricher provider.Searcher

	Seasons SeasonLister

	// Priority orders sources for scalar conflict resolution in the merge.
	Priority []string

	MaxConcurrent int
	SearchLimit   int
}

func (o *Orchestrator) maxConcurrent() int {
	if o.MaxConcurrent <= 0 {
		return 4
	}
	return o.MaxConcurrent
}

func (o *Orchestrator) searchLimit() int {
	if o.SearchLimit <= 0 {
		return 5
	}
	return o.SearchLimit
}

// CompareListing reconciles a list of raw titles. Output order is input
// order. Titles already in the catalog short-circuit: no external source is
// contacted for them. A failing source is logged and excluded from the
// merge; only catalog errors and invalid input abort the run.
func (o *Orchestrator) CompareListing(ctx context.Context, titles []string) ([]models.MergedCandidate, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("empty title list")
	}
	for i, t := range titles {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("blank title at index %d", i)
		}
	}

	out := make([]models.MergedCandidate, 0, len(titles))
	for _, raw := range titles {
		cand, err := o.compareOne(ctx, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, cand)
	}
	return out, nil
}

func (o *Orchestrator) compareOne(ctx context.Context, raw string) (models.MergedCandidate, error) {
	match, err := o.Matcher.Match(ctx, raw)
	if err != nil {
		return models.MergedCandidate{}, fmt.Errorf("match %q: %w", raw, err)
	}
	if match.Found() {
		return o.buildCandidate(raw, match, nil), nil
	}

	records := o.searchAll(ctx, raw)
	return o.buildCandidate(raw, match, records), nil
}

// searchAll fans the query out across all sources, bounded by MaxConcurrent,
// and keeps each source's first record. Failures are logged per source.
func (o *Orchestrator) searchAll(ctx context.Context, query string) []models.ExternalRecord {
	results := make([]*models.ExternalRecord, len(o.Sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, o.maxConcurrent())
	for i, src := range o.Sources {
		wg.Add(1)
		go func(i int, src provider.Searcher) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			recs, err := src.SearchByTitle(ctx, query, o.searchLimit())
			if err != nil {
				log.Printf("[reconcile] source %s failed for %q: %v", src.Name(), query, err)
				return
			}
			for _, r := range recs {
				if !r.IsZero() {
					rc := r
					results[i] = &rc
					return
				}
			}
		}(i, src)
	}
	wg.Wait()

	var out []models.ExternalRecord
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// CompareSeason scrapes a season listing and reconciles every title on it.
func (o *Orchestrator) CompareSeason(ctx context.Context, seasonURL string) ([]models.MergedCandidate, error) {
	if o.Seasons == nil {
		return nil, fmt.Errorf("no season lister configured")
	}
	titles, err := o.Seasons.FetchSeasonTitles(ctx, seasonURL)
	if err != nil {
		return nil, fmt.Errorf("season listing: %w", err)
	}
	if len(titles) == 0 {
		return nil, nil
	}
	return o.CompareListing(ctx, titles)
}

// CompareSeasonOf is CompareSeason for a (season, year) pair, using the
// lister's URL convention.
func (o *Orchestrator) CompareSeasonOf(ctx context.Context, season string, year int) ([]models.MergedCandidate, error) {
	if o.Seasons == nil {
		return nil, fmt.Errorf("no season lister configured")
	}
	return o.CompareSeason(ctx, o.Seasons.SeasonURL(season, year))
}

// ResolveISBN reconciles a single volume by ISBN. The local catalog is
// always consulted; the bibliographic chain runs sequentially and stops at
// the first source that answers, then the enricher supplements the record by
// title. When every source fails, the result is an empty candidate, not an
// error: an operator can still create the entry by hand.
func (o *Orchestrator) ResolveISBN(ctx context.Context, isbn string) (models.MergedCandidate, error) {
	clean := normalize.CleanISBN(isbn)
	if !normalize.ValidISBN(clean) {
		return models.MergedCandidate{}, fmt.Errorf("invalid isbn %q", isbn)
	}

	match, err := o.Matcher.MatchISBN(ctx, clean)
	if err != nil {
		return models.MergedCandidate{}, fmt.Errorf("isbn match %q: %w", clean, err)
	}

	var records []models.ExternalRecord
	for _, f := range o.ISBNChain {
		rec, err := f.FetchByISBN(ctx, clean)
		if err != nil {
			log.Printf("[reconcile] isbn source %s failed for %s: %v", f.Name(), clean, err)
			continue
		}
		if rec != nil && !rec.IsZero() {
			records = append(records, *rec)
			break
		}
	}

	if len(records) > 0 {
		title := normalize.StripVolumeSuffix(records[0].Title)
		if o.Enricher != nil && title != "" {
			if recs, err := o.Enricher.SearchByTitle(ctx, title, o.searchLimit()); err != nil {
				log.Printf("[reconcile] enricher %s failed for %q: %v", o.Enricher.Name(), title, err)
			} else if len(recs) > 0 && !recs[0].IsZero() {
				records = append(records, recs[0])
			}
		}
		// a volume unknown by ISBN may still belong to a known series
		if !match.Found() && title != "" {
			m, err := o.Matcher.Match(ctx, title)
			if err != nil {
				return models.MergedCandidate{}, fmt.Errorf("title match %q: %w", title, err)
			}
			match = m
		}
	}

	cand := o.buildCandidate(clean, match, records)
	if cand.MergedFields.ISBN == "" {
		cand.MergedFields.ISBN = clean
	}
	return cand, nil
}

// buildCandidate assembles the reviewable output for one title or ISBN.
func (o *Orchestrator) buildCandidate(raw string, match models.MatchCandidate, records []models.ExternalRecord) models.MergedCandidate {
	cand := models.MergedCandidate{
		ID:       uuid.NewString(),
		RawTitle: raw,
	}
	if match.Found() {
		cand.Exists = true
		cand.ExistingID = match.ExistingID
		cand.MatchedField = match.MatchedField
		cand.MatchTier = match.Tier
	}
	if len(records) == 0 {
		return cand
	}

	cand.PerSource = make(map[string]models.ExternalRecord, len(records))
	for _, r := range records {
		cand.PerSource[r.SourceName] = r
	}

	merged := merge.Merge(records, o.Priority)
	cand.MergedFields = merged
	cand.Genres = vocab.MapGenres(merged.Genres)
	cand.Themes = vocab.MapThemes(merged.Themes)
	cand.Staff = vocab.MapStaff(merged.Staff)
	return cand
}
