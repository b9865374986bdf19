package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mangacat/internal/normalize"
	"mangacat/pkg/models"
)

// DefaultThreshold is the minimum similarity score for the fuzzy tier.
const DefaultThreshold = 0.3

// Matcher resolves an incoming title against the local catalog through
// three tiers: exact equality on the title columns, substring match in the
// alternative-titles field, then trigram similarity over the whole catalog.
type Matcher struct {
	Repo      *Repo
	Threshold float64
}

func NewMatcher(repo *Repo) *Matcher {
	return &Matcher{Repo: repo, Threshold: DefaultThreshold}
}

func (m *Matcher) threshold() float64 {
	if m.Threshold <= 0 {
		return DefaultThreshold
	}
	return m.Threshold
}

// Match returns the best candidate for a raw title. A miss is a candidate
// with a nil ExistingID, never an error; errors are reserved for the
// database misbehaving.
func (m *Matcher) Match(ctx context.Context, raw string) (models.MatchCandidate, error) {
	variants := normalize.Variants(raw)
	exactForm := normalize.CollapseSpaces(raw)

	entries, err := m.Repo.FindExactTitle(ctx, variants)
	if err != nil {
		return models.MatchCandidate{}, fmt.Errorf("exact tier: %w", err)
	}
	if len(entries) > 0 {
		e := entries[0]
		field, matched := matchedTitleField(e, variants)
		tier := models.MatchTierVariant
		if strings.EqualFold(matched, exactForm) {
			tier = models.MatchTierExact
		}
		return candidate(e.ID, field, tier), nil
	}

	// The SQL fast path is ASCII-only: sqlite's lower() leaves accented
	// capitals alone. The remaining tiers scan the catalog once and fold
	// case in Go.
	all, err := m.Repo.AllTitles(ctx)
	if err != nil {
		return models.MatchCandidate{}, fmt.Errorf("catalog scan: %w", err)
	}

	for _, e := range all {
		field, matched := matchedTitleField(e, variants)
		if matched == "" {
			continue
		}
		tier := models.MatchTierVariant
		if strings.EqualFold(matched, exactForm) {
			tier = models.MatchTierExact
		}
		return candidate(e.ID, field, tier), nil
	}

	for _, v := range variants {
		lv := strings.ToLower(v)
		for _, e := range all {
			if e.AltTitles != "" && strings.Contains(strings.ToLower(e.AltTitles), lv) {
				return candidate(e.ID, models.MatchFieldAltTitles, models.MatchTierVariant), nil
			}
		}
	}

	return matchSimilarity(all, exactForm, m.threshold()), nil
}

// matchSimilarity scores every title field of every row, alt titles
// included, and keeps the best one at or above the threshold. Alt titles
// are scored per segment so one long field does not dilute a close hit.
// Ties break on title order, so results are stable across runs.
func matchSimilarity(entries []models.CatalogEntry, query string, threshold float64) models.MatchCandidate {
	type scored struct {
		entry models.CatalogEntry
		field models.MatchField
		score float64
	}
	var best []scored
	keep := func(e models.CatalogEntry, field models.MatchField, title string) {
		if title == "" {
			return
		}
		if s := Similarity(query, title); s >= threshold {
			best = append(best, scored{entry: e, field: field, score: s})
		}
	}
	for _, e := range entries {
		keep(e, models.MatchFieldTitle, e.Title)
		keep(e, models.MatchFieldTitleOrig, e.TitleOrig)
		keep(e, models.MatchFieldTitleFr, e.TitleFr)
		for _, seg := range altSegments(e.AltTitles) {
			keep(e, models.MatchFieldAltTitles, seg)
		}
	}
	if len(best) == 0 {
		return models.MatchCandidate{}
	}

	sort.SliceStable(best, func(i, j int) bool {
		if best[i].score != best[j].score {
			return best[i].score > best[j].score
		}
		return best[i].entry.Title < best[j].entry.Title
	})
	top := best[0]
	return candidate(top.entry.ID, top.field, models.MatchTierSimilarity)
}

// altSegments splits an alternative-titles field on its separators. A field
// without separators is a single segment.
func altSegments(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '\n' || r == '|'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchISBN matches on the normalized ISBN column only.
func (m *Matcher) MatchISBN(ctx context.Context, isbn string) (models.MatchCandidate, error) {
	e, err := m.Repo.FindByISBN(ctx, isbn)
	if err != nil {
		return models.MatchCandidate{}, fmt.Errorf("isbn match: %w", err)
	}
	if e == nil {
		return models.MatchCandidate{}, nil
	}
	return candidate(e.ID, models.MatchFieldISBN, models.MatchTierExact), nil
}

func candidate(id int64, field models.MatchField, tier models.MatchTier) models.MatchCandidate {
	return models.MatchCandidate{ExistingID: &id, MatchedField: field, Tier: tier}
}

// matchedTitleField reports which title column of the entry one of the
// variants hit. Column precedence follows the query: title, then
// title_orig, then title_fr.
func matchedTitleField(e models.CatalogEntry, variants []string) (models.MatchField, string) {
	for _, v := range variants {
		if strings.EqualFold(e.Title, v) {
			return models.MatchFieldTitle, v
		}
	}
	for _, v := range variants {
		if strings.EqualFold(e.TitleOrig, v) {
			return models.MatchFieldTitleOrig, v
		}
	}
	for _, v := range variants {
		if strings.EqualFold(e.TitleFr, v) {
			return models.MatchFieldTitleFr, v
		}
	}
	return models.MatchFieldTitle, ""
}
