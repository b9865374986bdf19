package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testSource(srv *httptest.Server) *Source {
	s := New()
	s.BaseURL = srv.URL
	return s
}

func TestFetchByISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/isbn/9782723455299.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"title": "One Piece",
			"subtitle": "Tome 42",
			"number_of_pages": 208,
			"publish_date": "July 2006",
			"publishers": ["Glénat"],
			"covers": [1234],
			"by_statement": "Eiichiro Oda",
			"description": {"type": "/type/text", "value": "Le combat continue."}
		}`))
	}))
	defer srv.Close()

	rec, err := testSource(srv).FetchByISBN(context.Background(), "978-2-7234-5529-9")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("nil record")
	}
	if rec.Title != "One Piece" || rec.ISBN != "9782723455299" {
		t.Errorf("title/isbn = %q/%q", rec.Title, rec.ISBN)
	}
	if rec.VolumeNumber != 42 {
		t.Errorf("volume = %d, want number from subtitle", rec.VolumeNumber)
	}
	if rec.PageCount != 208 || rec.Publisher != "Glénat" {
		t.Errorf("pages/publisher = %d/%q", rec.PageCount, rec.Publisher)
	}
	if rec.Synopsis != "Le combat continue." {
		t.Errorf("synopsis = %q, typed description not unwrapped", rec.Synopsis)
	}
	if rec.CoverImageURL != "https://covers.openlibrary.org/b/id/1234-L.jpg" {
		t.Errorf("cover = %q", rec.CoverImageURL)
	}
	if len(rec.Staff) != 1 || rec.Staff[0].Role != "Auteur" {
		t.Errorf("staff = %v", rec.Staff)
	}
}

func TestFetchByISBNPlainDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": "Berserk", "description": "Guts."}`))
	}))
	defer srv.Close()

	rec, err := testSource(srv).FetchByISBN(context.Background(), "9782723455299")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Synopsis != "Guts." {
		t.Errorf("synopsis = %q", rec.Synopsis)
	}
}

func TestFetchByISBNNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	rec, err := testSource(srv).FetchByISBN(context.Background(), "9782723455299")
	if err != nil || rec != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", rec, err)
	}
}

func TestFetchByISBNServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	rec, err := testSource(srv).FetchByISBN(context.Background(), "9782723455299")
	if err == nil || rec != nil {
		t.Fatalf("want error, got (%v, %v)", rec, err)
	}
}

func TestFetchByISBNUntitledEdition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"number_of_pages": 100}`))
	}))
	defer srv.Close()

	rec, err := testSource(srv).FetchByISBN(context.Background(), "9782723455299")
	if err != nil || rec != nil {
		t.Fatalf("want (nil, nil) for untitled edition, got (%v, %v)", rec, err)
	}
}
