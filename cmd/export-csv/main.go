// Exports the catalog to CSV, the counterpart of cmd/import-csv. The output
// round-trips: importing the file it writes reproduces the table.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mangacat/pkg/database"
)

func main() {
	var (
		out = flag.String("out", "data/catalog.csv", "output CSV path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	n, err := exportCatalog(ctx, db, *out)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	log.Printf("✅ exported %d catalog rows to %s", n, *out)
}

func exportCatalog(ctx context.Context, db *sql.DB, path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"title", "title_orig", "title_fr", "alt_titles", "isbn", "synopsis", "cover_url", "nb_volumes"}); err != nil {
		return 0, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT title, title_orig, title_fr, alt_titles, isbn, synopsis, cover_url, nb_volumes
		FROM manga
		ORDER BY title ASC
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var (
			title     string
			titleOrig sql.NullString
			titleFr   sql.NullString
			altTitles sql.NullString
			isbn      sql.NullString
			synopsis  sql.NullString
			coverURL  sql.NullString
			nbVolumes sql.NullInt64
		)
		if err := rows.Scan(&title, &titleOrig, &titleFr, &altTitles, &isbn, &synopsis, &coverURL, &nbVolumes); err != nil {
			return count, err
		}

		volumes := ""
		if nbVolumes.Valid {
			volumes = strconv.FormatInt(nbVolumes.Int64, 10)
		}
		record := []string{
			title,
			titleOrig.String,
			titleFr.String,
			altTitles.String,
			isbn.String,
			synopsis.String,
			coverURL.String,
			volumes,
		}
		if err := w.Write(record); err != nil {
			return count, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	w.Flush()
	return count, w.Error()
}
