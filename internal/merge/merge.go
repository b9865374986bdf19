// Package merge combines per-source ExternalRecords into one candidate
// record. The rules mirror the aggregator conventions used across the
// catalog: scalars resolve by source priority, collections union with
// case-insensitive de-duplication, and the output is fully deterministic:
// network arrival order never leaks into the result.
package merge

import (
	"sort"
	"strings"

	"mangacat/pkg/models"
)

// MergedSourceName marks a record as the product of a merge.
const MergedSourceName = "merged"

// StudioRole is the staff role studios are folded under.
const StudioRole = "Studio d'animation"

// Merge resolves records into a single ExternalRecord.
//
// Scalar fields take the first non-empty value scanning sources in
// priorityOrder; sources absent from the list rank after listed ones, ordered
// by name so the result is stable. Collection fields union across all
// sources. The input slice is not modified.
func Merge(records []models.ExternalRecord, priorityOrder []string) models.ExternalRecord {
	ordered := orderByPriority(records, priorityOrder)

	out := models.ExternalRecord{SourceName: MergedSourceName}

	for _, r := range ordered {
		pickString(&out.Title, r.Title)
		pickString(&out.OriginalTitle, r.OriginalTitle)
		pickString(&out.EnglishTitle, r.EnglishTitle)
		pickString(&out.Synopsis, r.Synopsis)
		pickString(&out.CoverImageURL, r.CoverImageURL)
		pickString(&out.ReleaseInfo, r.ReleaseInfo)
		pickString(&out.OfficialSite, r.OfficialSite)
		pickString(&out.ISBN, r.ISBN)
		pickString(&out.Publisher, r.Publisher)
		pickInt(&out.EpisodeOrVolumeCount, r.EpisodeOrVolumeCount)
		pickInt(&out.PageCount, r.PageCount)
		pickInt(&out.VolumeNumber, r.VolumeNumber)
	}

	out.Genres = unionStrings(ordered, func(r models.ExternalRecord) []string { return r.Genres })
	out.Themes = unionStrings(ordered, func(r models.ExternalRecord) []string { return r.Themes })
	out.Studios = unionStrings(ordered, func(r models.ExternalRecord) []string { return r.Studios })
	out.Staff = unionStaff(ordered, out.Studios)
	out.Characters = unionCharacters(ordered)

	return out
}

// orderByPriority returns records sorted by their source's position in
// priorityOrder. Unknown sources keep a stable order after the known ones.
func orderByPriority(records []models.ExternalRecord, priorityOrder []string) []models.ExternalRecord {
	rank := make(map[string]int, len(priorityOrder))
	for i, name := range priorityOrder {
		rank[name] = i
	}

	ordered := make([]models.ExternalRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iok := rank[ordered[i].SourceName]
		rj, jok := rank[ordered[j].SourceName]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return ordered[i].SourceName < ordered[j].SourceName
		}
	})
	return ordered
}

func pickString(dst *string, v string) {
	if *dst == "" && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func pickInt(dst *int, v int) {
	if *dst == 0 && v > 0 {
		*dst = v
	}
}

func unionStrings(records []models.ExternalRecord, get func(models.ExternalRecord) []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range records {
		for _, v := range get(r) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}

// unionStaff unions staff credits across sources and folds studio names into
// the staff list under StudioRole. Dedup key: lowercase(name)|lowercase(role).
func unionStaff(records []models.ExternalRecord, studios []string) []models.StaffCredit {
	var out []models.StaffCredit
	seen := map[string]bool{}
	add := func(c models.StaffCredit) {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return
		}
		key := strings.ToLower(name) + "|" + strings.ToLower(strings.TrimSpace(c.Role))
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, models.StaffCredit{Name: name, Role: strings.TrimSpace(c.Role)})
	}

	for _, r := range records {
		for _, c := range r.Staff {
			add(c)
		}
	}
	for _, s := range studios {
		add(models.StaffCredit{Name: s, Role: StudioRole})
	}
	return out
}

// unionCharacters keeps Main/Supporting characters voiced in Japanese.
// Adapters already filter; this is the pipeline's invariant, so it filters
// again rather than trusting them.
func unionCharacters(records []models.ExternalRecord) []models.CharacterCredit {
	var out []models.CharacterCredit
	seen := map[string]bool{}
	for _, r := range records {
		for _, c := range r.Characters {
			role := strings.TrimSpace(c.Role)
			if !strings.EqualFold(role, "Main") && !strings.EqualFold(role, "Supporting") {
				continue
			}
			name := strings.TrimSpace(c.Name)
			if name == "" {
				continue
			}
			key := strings.ToLower(name) + "|" + strings.ToLower(c.VoiceActor)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, models.CharacterCredit{Name: name, Role: role, VoiceActor: strings.TrimSpace(c.VoiceActor)})
		}
	}
	return out
}
