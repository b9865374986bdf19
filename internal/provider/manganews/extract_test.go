package manganews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mangacat/internal/httpx"
)

const volumeHTML = `<html><body>
<h1>One Piece Vol.42</h1>
<ul>
  <li>Éditeur : Glénat</li>
  <li>Date de parution : 05/07/2006</li>
  <li>ISBN : 978-2-7234-5529-9</li>
  <li>Nombre de pages : 208 pages</li>
  <li>Dessin : ODA Eiichiro</li>
  <li>Scénario : ODA Eiichiro</li>
</ul>
<div class="bigcover"><img src="/mangas/one-piece/mini/op42_m.jpg"></div>
<div id="summary">Le combat pour sauver Robin continue.</div>
</body></html>`

func TestParseVolumeDetail(t *testing.T) {
	rec, err := ParseVolumeDetail([]byte(volumeHTML))
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("nil record")
	}
	if rec.Title != "One Piece Vol.42" || rec.VolumeNumber != 42 {
		t.Errorf("title/volume = %q/%d", rec.Title, rec.VolumeNumber)
	}
	if rec.ISBN != "9782723455299" {
		t.Errorf("isbn = %q", rec.ISBN)
	}
	if rec.ReleaseInfo != "2006-07-05" {
		t.Errorf("release = %q, want ISO form of 05/07/2006", rec.ReleaseInfo)
	}
	if rec.PageCount != 208 {
		t.Errorf("pages = %d", rec.PageCount)
	}
	if rec.Publisher != "Glénat" {
		t.Errorf("publisher = %q", rec.Publisher)
	}
	if rec.CoverImageURL != "https://www.manga-news.com/mangas/one-piece/op42.jpg" {
		t.Errorf("cover = %q, thumbnail not upgraded", rec.CoverImageURL)
	}
	if rec.Synopsis != "Le combat pour sauver Robin continue." {
		t.Errorf("synopsis = %q", rec.Synopsis)
	}
	if len(rec.Staff) != 2 {
		t.Errorf("staff = %v", rec.Staff)
	}
}

func TestParseVolumeDetailISBN10Fallback(t *testing.T) {
	html := `<html><body><h1>Old Volume</h1><p>Code : 2723455297</p></body></html>`
	rec, err := ParseVolumeDetail([]byte(html))
	if err != nil || rec == nil {
		t.Fatalf("rec=%v err=%v", rec, err)
	}
	if rec.ISBN != "2723455297" {
		t.Errorf("isbn = %q, want 10-digit fallback", rec.ISBN)
	}
}

func TestParseVolumeDetailEmptyPage(t *testing.T) {
	rec, err := ParseVolumeDetail([]byte(`<html><body><nav>menu</nav></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Fatalf("contentless page yielded %+v", rec)
	}
}

const searchResultsHTML = `<html><body>
<div class="results">
  <a href="/index.php/serie/One-Piece">One Piece</a>
  <a href="/index.php/manga/One-Piece-Vol-42">One Piece Vol.42</a>
  <a href="/index.php/manga/One-Piece-Vol-42">One Piece Vol.42</a>
  <a href="/contact">Contact</a>
</div>
</body></html>`

func TestParseSearchResults(t *testing.T) {
	hits := ParseSearchResults([]byte(searchResultsHTML))
	if len(hits) != 2 {
		t.Fatalf("hits = %v, want series+volume deduped", hits)
	}
	if FirstVolumeLink([]byte(searchResultsHTML)) != "/index.php/manga/One-Piece-Vol-42" {
		t.Fatalf("FirstVolumeLink = %q", FirstVolumeLink([]byte(searchResultsHTML)))
	}
}

func testSource(srv *httptest.Server) *Source {
	s := New()
	s.BaseURL = srv.URL
	s.Client = httpx.New()
	s.Client.MinDelay = 0
	s.Client.Backoff = 0
	s.Client.MaxAttempts = 1
	return s
}

func TestFetchByISBNFollowsSearchResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/index.php/recherche/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "9782723455299" {
			t.Errorf("q = %q", got)
		}
		w.Write([]byte(searchResultsHTML))
	})
	mux.HandleFunc("/index.php/manga/One-Piece-Vol-42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(volumeHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := testSource(srv)
	rec, err := s.FetchByISBN(context.Background(), "978-2-7234-5529-9")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rec == nil {
		t.Fatal("nil record")
	}
	if rec.ISBN != "9782723455299" || rec.VolumeNumber != 42 {
		t.Errorf("rec = %+v", rec)
	}
	if !strings.Contains(rec.SourceID, "/index.php/manga/One-Piece-Vol-42") {
		t.Errorf("source id = %q", rec.SourceID)
	}
}

func TestFetchByISBNNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>Aucun résultat</body></html>`))
	}))
	defer srv.Close()

	s := testSource(srv)
	rec, err := s.FetchByISBN(context.Background(), "9782723455299")
	if err != nil || rec != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", rec, err)
	}
}
