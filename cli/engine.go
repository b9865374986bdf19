package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"mangacat/internal/catalog"
	"mangacat/internal/reconcile"
	"mangacat/pkg/database"
	"mangacat/pkg/utils"
)

// buildEngine opens the catalog and assembles the orchestrator. The caller
// must invoke the returned cleanup.
func buildEngine() (*reconcile.Orchestrator, func(), error) {
	cfg, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	dbCfg := database.DefaultConfig()
	if cfg.Database.Path != "" {
		dbCfg.Path = cfg.Database.Path
	}
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	matcher := catalog.NewMatcher(catalog.NewRepo(db))
	matcher.Threshold = cfg.Matcher.SimilarityThreshold

	return reconcile.Build(cfg, matcher), func() { db.Close() }, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
