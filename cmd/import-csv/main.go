// Seeds the catalog from a CSV export. Expected columns (header row, any
// order): title, title_orig, title_fr, alt_titles, isbn, synopsis,
// cover_url, nb_volumes. Only title is required. Rows upsert on ISBN when
// present, otherwise on exact title.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"mangacat/internal/normalize"
	"mangacat/pkg/database"
)

func main() {
	var (
		in = flag.String("in", "data/catalog.csv", "input CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	n, err := importCatalog(ctx, db, *in)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("✅ imported %d catalog rows from %s", n, *in)
}

func importCatalog(ctx context.Context, db *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	insert, err := db.PrepareContext(ctx, `
		INSERT INTO manga (title, title_orig, title_fr, alt_titles, isbn, synopsis, cover_url, nb_volumes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer insert.Close()

	update, err := db.PrepareContext(ctx, `
		UPDATE manga SET
		  title = ?, title_orig = ?, title_fr = ?, alt_titles = ?, isbn = ?,
		  synopsis = ?, cover_url = ?, nb_volumes = ?
		WHERE id = ?
	`)
	if err != nil {
		return 0, err
	}
	defer update.Close()

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(row) == 0 {
			continue
		}

		title := valueAt(header, row, "title")
		if title == "" {
			continue
		}

		isbn := normalize.CleanISBN(valueAt(header, row, "isbn"))
		nbVolumes, err := parseNullInt(valueAt(header, row, "nb_volumes"))
		if err != nil {
			return count, fmt.Errorf("parse nb_volumes for %q: %w", title, err)
		}

		args := []any{
			title,
			nullString(valueAt(header, row, "title_orig")),
			nullString(valueAt(header, row, "title_fr")),
			nullString(valueAt(header, row, "alt_titles")),
			nullString(isbn),
			nullString(valueAt(header, row, "synopsis")),
			nullString(valueAt(header, row, "cover_url")),
			nbVolumes,
		}

		id, err := existingID(ctx, db, title, isbn)
		if err != nil {
			return count, err
		}
		if id > 0 {
			_, err = update.ExecContext(ctx, append(args, id)...)
		} else {
			_, err = insert.ExecContext(ctx, args...)
		}
		if err != nil {
			return count, fmt.Errorf("upsert %q: %w", title, err)
		}
		count++
	}

	return count, nil
}

// existingID finds the row a CSV line should update: ISBN first, then exact
// title. 0 means insert.
func existingID(ctx context.Context, db *sql.DB, title, isbn string) (int64, error) {
	var id int64
	if isbn != "" {
		err := db.QueryRowContext(ctx, `SELECT id FROM manga WHERE isbn = ?`, isbn).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}
	}
	err := db.QueryRowContext(ctx, `SELECT id FROM manga WHERE lower(title) = lower(?)`, title).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseNullInt(raw string) (sql.NullInt64, error) {
	if raw == "" {
		return sql.NullInt64{}, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: n, Valid: true}, nil
}
