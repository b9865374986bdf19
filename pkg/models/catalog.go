package models

// CatalogEntry is one row of the local authoritative catalog, restricted to
// the fields reconciliation reads. AltTitles is the raw semicolon/newline
// delimited column value.
type CatalogEntry struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	TitleOrig string `json:"title_orig,omitempty"`
	TitleFr   string `json:"title_fr,omitempty"`
	AltTitles string `json:"alt_titles,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	Synopsis  string `json:"synopsis,omitempty"`
	CoverURL  string `json:"cover_url,omitempty"`
	NbVolumes int    `json:"nb_volumes,omitempty"`
}
