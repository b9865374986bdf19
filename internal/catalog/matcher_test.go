package catalog

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"mangacat/pkg/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE manga (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			title_orig TEXT,
			title_fr   TEXT,
			alt_titles TEXT,
			isbn       TEXT,
			synopsis   TEXT,
			cover_url  TEXT,
			nb_volumes INTEGER
		)
	`)
	if err != nil {
		t.Fatal(err)
	}

	seed := []struct {
		title, orig, fr, alt, isbn string
	}{
		{"Bleach", "ブリーチ", "", "", "9782723442275"},
		{"Attack on Titan Season 2", "進撃の巨人 Season 2", "L'Attaque des Titans Saison 2", "Shingeki no Kyojin Season 2", ""},
		{"One Piece", "", "One Piece", "OP", "9782723455299"},
		{"Berserk", "", "", "Kenpuu Denki Berserk; Berserk: The Prototype", ""},
		{"Panorama Island", "パノラマ島綺譚", "L'Île panorama", "", ""},
	}
	for _, s := range seed {
		_, err := db.Exec(`INSERT INTO manga (title, title_orig, title_fr, alt_titles, isbn) VALUES (?, ?, ?, ?, ?)`,
			s.title, nullable(s.orig), nullable(s.fr), nullable(s.alt), nullable(s.isbn))
		if err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func testMatcher(t *testing.T) *Matcher {
	return NewMatcher(NewRepo(testDB(t)))
}

func TestMatchExactTier(t *testing.T) {
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "Bleach")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() {
		t.Fatal("exact title missed")
	}
	if c.Tier != models.MatchTierExact || c.MatchedField != models.MatchFieldTitle {
		t.Errorf("tier/field = %v/%v", c.Tier, c.MatchedField)
	}
}

func TestMatchExactCaseInsensitive(t *testing.T) {
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "  bleach ")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() || c.Tier != models.MatchTierExact {
		t.Fatalf("candidate = %+v", c)
	}
}

func TestMatchOriginalTitleColumn(t *testing.T) {
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "ブリーチ")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() || c.MatchedField != models.MatchFieldTitleOrig {
		t.Fatalf("candidate = %+v", c)
	}
}

func TestMatchSeasonVariantTier(t *testing.T) {
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "Attack on Titan 2nd Season")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() {
		t.Fatal("season numbering variant missed")
	}
	if c.Tier != models.MatchTierVariant {
		t.Errorf("tier = %v, want variant for rewritten season form", c.Tier)
	}
}

func TestMatchAltTitlesSubstring(t *testing.T) {
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "Kenpuu Denki Berserk")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() {
		t.Fatal("alt-titles substring missed")
	}
	if c.MatchedField != models.MatchFieldAltTitles || c.Tier != models.MatchTierVariant {
		t.Errorf("field/tier = %v/%v", c.MatchedField, c.Tier)
	}
}

func TestMatchExactAccentedCase(t *testing.T) {
	// sqlite's lower() leaves Î alone, so this only matches through the
	// Go-side folding pass.
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "L'ÎLE PANORAMA")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() {
		t.Fatal("accented uppercase title missed")
	}
	if c.MatchedField != models.MatchFieldTitleFr || c.Tier != models.MatchTierExact {
		t.Errorf("field/tier = %v/%v", c.MatchedField, c.Tier)
	}
}

func TestMatchAltTitlesSimilarity(t *testing.T) {
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "Kenpuu Denki Bersork")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() {
		t.Fatal("typo in alternative title missed by similarity tier")
	}
	if c.MatchedField != models.MatchFieldAltTitles || c.Tier != models.MatchTierSimilarity {
		t.Errorf("field/tier = %v/%v", c.MatchedField, c.Tier)
	}
}

func TestMatchSimilarityTier(t *testing.T) {
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "Bleachh")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() {
		t.Fatal("near-typo missed by similarity tier")
	}
	if c.Tier != models.MatchTierSimilarity {
		t.Errorf("tier = %v", c.Tier)
	}
}

func TestMatchNoCandidate(t *testing.T) {
	m := testMatcher(t)
	c, err := m.Match(context.Background(), "Zzz Completely Unrelated Xxx")
	if err != nil {
		t.Fatal(err)
	}
	if c.Found() {
		t.Fatalf("phantom match: %+v", c)
	}
}

func TestMatchThresholdRaised(t *testing.T) {
	m := testMatcher(t)
	m.Threshold = 0.99
	c, err := m.Match(context.Background(), "Bleachh")
	if err != nil {
		t.Fatal(err)
	}
	if c.Found() {
		t.Fatalf("threshold 0.99 should reject a typo, got %+v", c)
	}
}

func TestMatchISBN(t *testing.T) {
	m := testMatcher(t)
	c, err := m.MatchISBN(context.Background(), "978-2-7234-5529-9")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Found() || c.MatchedField != models.MatchFieldISBN || c.Tier != models.MatchTierExact {
		t.Fatalf("candidate = %+v", c)
	}

	c, err = m.MatchISBN(context.Background(), "9999999999999")
	if err != nil {
		t.Fatal(err)
	}
	if c.Found() {
		t.Fatalf("unknown isbn matched: %+v", c)
	}
}

func TestSimilarity(t *testing.T) {
	if s := Similarity("Bleach", "Bleach"); s != 1 {
		t.Errorf("identical strings = %v", s)
	}
	if s := Similarity("Bleach", "xyzq"); s != 0 {
		t.Errorf("disjoint strings = %v", s)
	}
	if s := Similarity("Gokushufudo", "Gokushufudô"); s < 0.5 {
		t.Errorf("diacritic fold too weak: %v", s)
	}
	if s := Similarity("", "Bleach"); s != 0 {
		t.Errorf("empty query = %v", s)
	}
}

func TestRepoGetByIDMissing(t *testing.T) {
	r := NewRepo(testDB(t))
	e, err := r.GetByID(context.Background(), 9999)
	if err != nil || e != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", e, err)
	}
}

func TestRepoList(t *testing.T) {
	r := NewRepo(testDB(t))
	items, err := r.List(context.Background(), ListQuery{Q: "piece"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "One Piece" {
		t.Fatalf("items = %v", items)
	}
	n, err := r.Count(context.Background(), ListQuery{})
	if err != nil || n != 5 {
		t.Fatalf("count = %d err = %v", n, err)
	}
}
