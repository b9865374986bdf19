package models

// MatchTier says how confident the local catalog match is.
type MatchTier string

const (
	// MatchTierExact: the raw title itself matched a catalog title field.
	MatchTierExact MatchTier = "exact"
	// MatchTierVariant: a generated title variant matched, or the title was
	// found inside the catalog's alternative-titles field.
	MatchTierVariant MatchTier = "variant"
	// MatchTierSimilarity: trigram (or substring fallback) similarity above
	// the configured threshold.
	MatchTierSimilarity MatchTier = "similarity"
)

// MatchField identifies which catalog column satisfied the match.
type MatchField string

const (
	MatchFieldTitle     MatchField = "title"
	MatchFieldTitleOrig MatchField = "title_orig"
	MatchFieldTitleFr   MatchField = "title_fr"
	MatchFieldAltTitles MatchField = "alt_titles"
	MatchFieldISBN      MatchField = "isbn"
)

// MatchCandidate is the outcome of one local catalog lookup.
// ExistingID is set iff some catalog row satisfied a predicate.
type MatchCandidate struct {
	ExistingID   *int64     `json:"existing_id,omitempty"`
	MatchedField MatchField `json:"matched_field,omitempty"`
	Tier         MatchTier  `json:"tier,omitempty"`
}

// Found reports whether a catalog row matched.
func (m MatchCandidate) Found() bool { return m.ExistingID != nil }

// VocabTerm is an external genre/theme/role string annotated with the
// catalog's controlled vocabulary. CanonicalID is nil for unmapped terms;
// the raw term is always retained.
type VocabTerm struct {
	Raw           string `json:"raw"`
	CanonicalID   *int64 `json:"canonical_id,omitempty"`
	CanonicalName string `json:"canonical_name,omitempty"`
}

// StaffTerm is a staff credit with its role run through the vocabulary mapper.
type StaffTerm struct {
	Name string    `json:"name"`
	Role VocabTerm `json:"role"`
}

// MergedCandidate is the reconciliation output for one raw title or ISBN:
// either a pointer at an existing catalog row, or a creation-ready record
// merged from every source that answered. It is what an operator reviews
// before the external create-entry collaborator is invoked.
type MergedCandidate struct {
	ID       string `json:"id"` // review handle, generated per reconciliation
	RawTitle string `json:"raw_title"`

	Exists       bool       `json:"exists"`
	ExistingID   *int64     `json:"existing_id,omitempty"`
	MatchedField MatchField `json:"matched_field,omitempty"`
	MatchTier    MatchTier  `json:"match_tier,omitempty"`

	MergedFields ExternalRecord            `json:"merged_fields"`
	PerSource    map[string]ExternalRecord `json:"per_source,omitempty"`

	Genres []VocabTerm `json:"genres,omitempty"`
	Themes []VocabTerm `json:"themes,omitempty"`
	Staff  []StaffTerm `json:"staff,omitempty"`
}
