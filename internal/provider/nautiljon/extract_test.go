package nautiljon

import (
	"testing"
)

const seasonHTML = `<html><body>
<div class="elt">
  <div class="title"><h2><a href="/animes/one.html">Frieren (TV)</a></h2></div>
</div>
<div class="elt">
  <div class="title"><h2><a href="/animes/two.html">Dandadan</a></h2></div>
</div>
<div class="elt">
  <div class="title"><h2><a href="/animes/one-dup.html">Frieren (TV)</a></h2></div>
</div>
<div class="elt"><div class="title"><h2></h2></div></div>
</body></html>`

func TestParseSeasonListing(t *testing.T) {
	titles := ParseSeasonListing([]byte(seasonHTML))
	want := []string{"Frieren", "Dandadan"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}
}

const looseSeasonHTML = `<html><body>
<section><h2><a href="/animes/x.html">Sousou no Frieren</a></h2></section>
<section><h3><a href="/animes/y.html">Blue Lock 2nd Season</a></h3></section>
</body></html>`

func TestParseSeasonListingFallbackTier(t *testing.T) {
	titles := ParseSeasonListing([]byte(looseSeasonHTML))
	if len(titles) != 2 {
		t.Fatalf("fallback tier missed: %v", titles)
	}
	if titles[1] != "Blue Lock 2nd Season" {
		t.Fatalf("titles = %v", titles)
	}
}

func TestParseSeasonListingGarbage(t *testing.T) {
	if titles := ParseSeasonListing([]byte("<html><body><p>rien</p></body></html>")); titles != nil {
		t.Fatalf("garbage page yielded %v", titles)
	}
	if titles := ParseSeasonListing([]byte("not html at all \x00")); len(titles) != 0 {
		t.Fatalf("binary junk yielded %v", titles)
	}
}

const searchHTML = `<html><body>
<div class="elt">
  <img src="/imagesmin/animes/mini/frieren.jpg">
  <a href="/animes/sousou-no-frieren.html">Sousou no Frieren (TV)</a>
</div>
<div class="elt">
  <a href="/animes/frieren-movie.html">Frieren Movie</a>
</div>
</body></html>`

func TestParseSearchResults(t *testing.T) {
	hits, err := ParseSearchResults([]byte(searchHTML))
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %v", hits)
	}
	if hits[0].Title != "Sousou no Frieren" {
		t.Errorf("title = %q (parenthetical should be stripped)", hits[0].Title)
	}
	if hits[0].URL != "/animes/sousou-no-frieren.html" {
		t.Errorf("url = %q", hits[0].URL)
	}
	if hits[0].CoverURL != "https://www.nautiljon.com/imagesmin/animes/frieren.jpg" {
		t.Errorf("cover not upgraded from thumbnail: %q", hits[0].CoverURL)
	}
	if hits[1].CoverURL != "" {
		t.Errorf("missing image should stay empty, got %q", hits[1].CoverURL)
	}
}

const detailHTML = `<html><body>
<h1>Sousou no Frieren (TV)</h1>
<ul class="infos">
  <li>Titre original : 葬送のフリーレン</li>
  <li>Nb d'épisodes : 28</li>
  <li>Date de sortie : 29/09/2023</li>
  <li>Réalisateur : SAITO Keiichirou</li>
  <li>Studio d'animation : Madhouse</li>
  <li>Site officiel : https://frieren-anime.jp</li>
</ul>
<a href="/animes/genre/fantasy.html">Fantastique</a>
<a href="/animes/theme/magie.html">Magie</a>
<div class="image_fiche"><img src="/images/animes/mini/frieren_big.jpg"></div>
<div class="description">Après la défaite du roi démon...</div>
</body></html>`

func TestParseAnimeDetail(t *testing.T) {
	rec, err := ParseAnimeDetail([]byte(detailHTML))
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("nil record")
	}
	if rec.Title != "Sousou no Frieren" {
		t.Errorf("title = %q", rec.Title)
	}
	if rec.OriginalTitle != "葬送のフリーレン" {
		t.Errorf("original title = %q", rec.OriginalTitle)
	}
	if rec.EpisodeOrVolumeCount != 28 {
		t.Errorf("episodes = %d", rec.EpisodeOrVolumeCount)
	}
	if rec.ReleaseInfo != "2023-09-29" {
		t.Errorf("release = %q, want ISO date", rec.ReleaseInfo)
	}
	if len(rec.Staff) != 1 || rec.Staff[0].Role != "Réalisateur" {
		t.Errorf("staff = %v", rec.Staff)
	}
	if len(rec.Studios) != 1 || rec.Studios[0] != "Madhouse" {
		t.Errorf("studios = %v", rec.Studios)
	}
	if rec.OfficialSite != "https://frieren-anime.jp" {
		t.Errorf("official site = %q", rec.OfficialSite)
	}
	if len(rec.Genres) != 1 || rec.Genres[0] != "Fantastique" {
		t.Errorf("genres = %v", rec.Genres)
	}
	if len(rec.Themes) != 1 || rec.Themes[0] != "Magie" {
		t.Errorf("themes = %v", rec.Themes)
	}
	if rec.CoverImageURL != "https://www.nautiljon.com/images/animes/frieren_big.jpg" {
		t.Errorf("cover = %q", rec.CoverImageURL)
	}
	if rec.Synopsis != "Après la défaite du roi démon..." {
		t.Errorf("synopsis = %q", rec.Synopsis)
	}
}

func TestParseAnimeDetailPartialPage(t *testing.T) {
	rec, err := ParseAnimeDetail([]byte(`<html><body><h1>Orphan Title</h1></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.Title != "Orphan Title" {
		t.Fatalf("rec = %+v", rec)
	}
	if rec.Synopsis != "" || len(rec.Genres) != 0 {
		t.Fatalf("phantom fields extracted: %+v", rec)
	}
}

func TestParseAnimeDetailEmptyPage(t *testing.T) {
	rec, err := ParseAnimeDetail([]byte(`<html><body><p>x</p></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Fatalf("rec = %+v, want nil for contentless page", rec)
	}
}
