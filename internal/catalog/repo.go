// Package catalog is the read side of the local catalog: the queries the
// matcher needs, plus the HTTP listing surface. Reconciliation never writes
// here; entry creation belongs to an external collaborator.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mangacat/internal/normalize"
	"mangacat/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const entryColumns = `id, title, title_orig, title_fr, alt_titles, isbn, synopsis, cover_url, nb_volumes`

func scanEntry(row interface{ Scan(...any) error }) (*models.CatalogEntry, error) {
	var (
		e         models.CatalogEntry
		titleOrig sql.NullString
		titleFr   sql.NullString
		altTitles sql.NullString
		isbn      sql.NullString
		synopsis  sql.NullString
		coverURL  sql.NullString
		nbVolumes sql.NullInt64
	)
	if err := row.Scan(&e.ID, &e.Title, &titleOrig, &titleFr, &altTitles, &isbn, &synopsis, &coverURL, &nbVolumes); err != nil {
		return nil, err
	}
	e.TitleOrig = titleOrig.String
	e.TitleFr = titleFr.String
	e.AltTitles = altTitles.String
	e.ISBN = isbn.String
	e.Synopsis = synopsis.String
	e.CoverURL = coverURL.String
	e.NbVolumes = int(nbVolumes.Int64)
	return &e, nil
}

// GetByID returns (nil, nil) when the row does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*models.CatalogEntry, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM manga
		WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan getByID: %w", err)
	}
	return e, nil
}

// FindExactTitle returns rows whose title, title_orig or title_fr equals any
// of the given variants, case-insensitively. sqlite's lower() folds ASCII
// only; the matcher re-checks missed rows with Go case folding. Ordered by
// title for deterministic first-result selection.
func (r *Repo) FindExactTitle(ctx context.Context, variants []string) ([]models.CatalogEntry, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(variants)), ",")
	args := make([]any, 0, len(variants)*3)
	lowered := make([]any, 0, len(variants))
	for _, v := range variants {
		lowered = append(lowered, strings.ToLower(v))
	}
	args = append(args, lowered...)
	args = append(args, lowered...)
	args = append(args, lowered...)

	rows, err := r.DB.QueryContext(ctx, fmt.Sprintf(`
		SELECT `+entryColumns+`
		FROM manga
		WHERE lower(title) IN (%[1]s)
		   OR lower(title_orig) IN (%[1]s)
		   OR lower(title_fr) IN (%[1]s)
		ORDER BY title ASC
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("exact title query: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// FindByISBN matches on the normalized ISBN column.
func (r *Repo) FindByISBN(ctx context.Context, isbn string) (*models.CatalogEntry, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM manga
		WHERE isbn = ?
		ORDER BY title ASC
		LIMIT 1
	`, normalize.CleanISBN(isbn))
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan byISBN: %w", err)
	}
	return e, nil
}

// AllTitles streams every row's title fields for the similarity tier.
// sqlite has no trigram extension, so scoring happens in Go; the candidate
// set is the whole catalog, which stays small enough for a linear pass.
func (r *Repo) AllTitles(ctx context.Context) ([]models.CatalogEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM manga
		ORDER BY title ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("all titles query: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

type ListQuery struct {
	Q      string
	Limit  int
	Offset int
}

// List supports the operator-facing catalog browse endpoint.
func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.CatalogEntry, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}

	where := ""
	args := []any{}
	if q.Q != "" {
		where = `WHERE instr(lower(title), lower(?)) > 0
		   OR instr(lower(title_fr), lower(?)) > 0
		   OR instr(lower(alt_titles), lower(?)) > 0`
		args = append(args, q.Q, q.Q, q.Q)
	}
	args = append(args, q.Limit, q.Offset)

	rows, err := r.DB.QueryContext(ctx, fmt.Sprintf(`
		SELECT `+entryColumns+`
		FROM manga
		%s
		ORDER BY title ASC
		LIMIT ? OFFSET ?
	`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Count mirrors List for pagination metadata.
func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	where := ""
	args := []any{}
	if q.Q != "" {
		where = `WHERE instr(lower(title), lower(?)) > 0
		   OR instr(lower(title_fr), lower(?)) > 0
		   OR instr(lower(alt_titles), lower(?)) > 0`
		args = append(args, q.Q, q.Q, q.Q)
	}
	row := r.DB.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM manga %s`, where), args...)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return n, nil
}

func collect(rows *sql.Rows) ([]models.CatalogEntry, error) {
	var out []models.CatalogEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
