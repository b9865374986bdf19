// Package vocab translates external staff-role and genre/theme strings into
// the catalog's controlled vocabulary.
//
// The tables are deliberately literal: matching is case-sensitive on the
// exact external term, and the common language/spelling variants are
// enumerated rather than fuzzy-matched. Predictability beats coverage here;
// an unmapped term simply passes through with a nil canonical ID.
package vocab

import "mangacat/pkg/models"

type entry struct {
	id   int64
	name string
}

// MapStaffRole resolves one external staff-role string.
func MapStaffRole(raw string) models.VocabTerm {
	return lookup(staffRoles, raw)
}

// MapGenre resolves one external genre string.
func MapGenre(raw string) models.VocabTerm {
	return lookup(genres, raw)
}

// MapTheme resolves one external theme/tag string.
func MapTheme(raw string) models.VocabTerm {
	return lookup(themes, raw)
}

func lookup(table map[string]entry, raw string) models.VocabTerm {
	if e, ok := table[raw]; ok {
		id := e.id
		return models.VocabTerm{Raw: raw, CanonicalID: &id, CanonicalName: e.name}
	}
	return models.VocabTerm{Raw: raw}
}

// MapGenres runs a whole genre list through the mapper, preserving order.
func MapGenres(raws []string) []models.VocabTerm {
	out := make([]models.VocabTerm, 0, len(raws))
	for _, r := range raws {
		out = append(out, MapGenre(r))
	}
	return out
}

// MapThemes runs a whole theme list through the mapper, preserving order.
func MapThemes(raws []string) []models.VocabTerm {
	out := make([]models.VocabTerm, 0, len(raws))
	for _, r := range raws {
		out = append(out, MapTheme(r))
	}
	return out
}

// MapStaff annotates staff credits with canonical roles, preserving order.
func MapStaff(credits []models.StaffCredit) []models.StaffTerm {
	out := make([]models.StaffTerm, 0, len(credits))
	for _, c := range credits {
		out = append(out, models.StaffTerm{Name: c.Name, Role: MapStaffRole(c.Role)})
	}
	return out
}
