package models

// ExternalRecord is the normalized, internal form of one title as seen by a
// single external source (AniList, Google Books, Nautiljon, ...).
//
// Every adapter maps its own response shape into this structure at its
// boundary; nothing downstream of an adapter ever sees provider-specific
// payloads. Only SourceName and Title are guaranteed to be set.
type ExternalRecord struct {
	SourceName    string `json:"source_name"`
	SourceID      string `json:"source_id,omitempty"` // provider-side identifier
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title,omitempty"` // native-script title
	EnglishTitle  string `json:"english_title,omitempty"`
	Synopsis      string `json:"synopsis,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`

	Genres []string `json:"genres,omitempty"`
	Themes []string `json:"themes,omitempty"`

	Staff      []StaffCredit     `json:"staff,omitempty"`
	Characters []CharacterCredit `json:"characters,omitempty"`
	Studios    []string          `json:"studios,omitempty"`

	// EpisodeOrVolumeCount is episodes for anime sources, volumes for book
	// sources. Zero means unknown.
	EpisodeOrVolumeCount int    `json:"episode_or_volume_count,omitempty"`
	ReleaseInfo          string `json:"release_info,omitempty"` // airing dates / publish date, ISO where possible
	OfficialSite         string `json:"official_site,omitempty"`

	// Book-specific fields, filled by ISBN-capable sources.
	ISBN      string `json:"isbn,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	PageCount int    `json:"page_count,omitempty"`

	// VolumeNumber is extracted from the title when present (e.g. "tome 3").
	// Advisory only: it never gates a match decision.
	VolumeNumber int `json:"volume_number,omitempty"`
}

// IsZero reports whether the record carries no usable metadata at all.
func (r ExternalRecord) IsZero() bool {
	return r.Title == "" && r.Synopsis == "" && r.CoverImageURL == "" &&
		len(r.Genres) == 0 && len(r.Staff) == 0 && len(r.Studios) == 0 &&
		r.ISBN == "" && r.EpisodeOrVolumeCount == 0
}

// StaffCredit is one production credit (author, director, composer, studio).
type StaffCredit struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// CharacterCredit links a character to its Japanese voice actor. Only "Main"
// and "Supporting" roles survive adapter mapping.
type CharacterCredit struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	VoiceActor string `json:"voice_actor,omitempty"`
}
