package vocab

import (
	"testing"

	"mangacat/pkg/models"
)

func TestMapStaffRoleVariantsAgree(t *testing.T) {
	fr := MapStaffRole("Réalisateur")
	en := MapStaffRole("Director")
	if fr.CanonicalID == nil || en.CanonicalID == nil {
		t.Fatal("known role unmapped")
	}
	if *fr.CanonicalID != *en.CanonicalID || fr.CanonicalName != en.CanonicalName {
		t.Fatalf("FR/EN variants map differently: %+v vs %+v", fr, en)
	}
}

func TestMapStaffRoleIsCaseSensitive(t *testing.T) {
	if got := MapStaffRole("director"); got.CanonicalID != nil {
		t.Fatalf("lowercase variant should pass through unmapped, got %+v", got)
	}
}

func TestUnmappedTermPassesThrough(t *testing.T) {
	got := MapGenre("Cooking with Explosives")
	if got.CanonicalID != nil {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if got.Raw != "Cooking with Explosives" {
		t.Fatalf("raw term not retained: %+v", got)
	}
}

func TestMapGenresPreservesOrderAndLength(t *testing.T) {
	in := []string{"Action", "NotAGenre", "Comedy"}
	out := MapGenres(in)
	if len(out) != len(in) {
		t.Fatalf("mapper dropped terms: %d != %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Raw != in[i] {
			t.Errorf("order not preserved at %d: %q", i, out[i].Raw)
		}
	}
	if out[1].CanonicalID != nil {
		t.Error("junk term should be unmapped")
	}
}

func TestMapStaff(t *testing.T) {
	out := MapStaff([]models.StaffCredit{
		{Name: "Hajime Isayama", Role: "Original Creator"},
		{Name: "Someone", Role: "Best Boy"},
	})
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0].Role.CanonicalName != "Auteur" {
		t.Errorf("Original Creator -> %q, want Auteur", out[0].Role.CanonicalName)
	}
	if out[1].Role.CanonicalID != nil || out[1].Role.Raw != "Best Boy" {
		t.Errorf("unmapped role mishandled: %+v", out[1].Role)
	}
}

func TestGenreAndThemeTablesDisjointIDs(t *testing.T) {
	// theme IDs live in a separate range so merged vocab lists can coexist
	for term, e := range themes {
		if e.id < 100 {
			t.Errorf("theme %q has genre-range id %d", term, e.id)
		}
	}
	for term, e := range genres {
		if e.id >= 100 {
			t.Errorf("genre %q has theme-range id %d", term, e.id)
		}
	}
}
