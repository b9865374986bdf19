package reconcile

import (
	"time"

	"mangacat/internal/httpx"
	"mangacat/internal/provider"
	"mangacat/internal/provider/anilist"
	"mangacat/internal/provider/googlebooks"
	"mangacat/internal/provider/jikan"
	"mangacat/internal/provider/manganews"
	"mangacat/internal/provider/nautiljon"
	"mangacat/internal/provider/openlibrary"
	"mangacat/pkg/utils"
)

// Build assembles the production orchestrator from the configuration. The
// scraped sites share one httpx client so the inter-request delay and the
// cache apply across them.
func Build(cfg utils.Config, matcher Matcher) *Orchestrator {
	scrape := httpx.New()
	if cfg.Scraper.MinDelayMS > 0 {
		scrape.MinDelay = time.Duration(cfg.Scraper.MinDelayMS) * time.Millisecond
	}
	if cfg.Scraper.CacheTTLSec > 0 {
		scrape.CacheTTL = time.Duration(cfg.Scraper.CacheTTLSec) * time.Second
	}
	if cfg.Scraper.MaxAttempts > 0 {
		scrape.MaxAttempts = cfg.Scraper.MaxAttempts
	}

	naut := nautiljon.New()
	naut.Client = scrape
	mn := manganews.New()
	mn.Client = scrape

	return &Orchestrator{
		Matcher: matcher,
		Sources: []provider.Searcher{
			anilist.NewAnime(),
			naut,
			jikan.New(),
		},
		ISBNChain: []provider.ISBNFetcher{
			googlebooks.New("fr"),
			openlibrary.New(),
			mn,
		},
		Enricher:      anilist.NewManga(),
		Seasons:       naut,
		Priority:      cfg.Merge.Priority,
		MaxConcurrent: cfg.Reconcile.MaxConcurrent,
		SearchLimit:   cfg.Reconcile.SearchLimit,
	}
}
