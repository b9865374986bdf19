// Package httpx is the outbound HTTP policy shared by the scraping adapters:
// realistic browser User-Agent, per-call timeout, minimum inter-request
// delay, a short-TTL in-memory response cache, and bounded retry with
// backoff on 429/5xx. Providers only locate pages and parse HTML; network
// behavior lives here.
package httpx

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultUserAgent mimics a desktop browser; the scraped sites serve
	// different markup to obvious bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	defaultTimeout     = 30 * time.Second
	defaultMinDelay    = 1500 * time.Millisecond
	defaultCacheTTL    = 5 * time.Minute
	defaultMaxAttempts = 3
	defaultBackoff     = 2 * time.Second
)

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// Client serializes its own outbound requests, so the delay bookkeeping and
// cache need no finer-grained locking than the single mutex.
type Client struct {
	HTTP        *http.Client
	UserAgent   string
	MinDelay    time.Duration
	CacheTTL    time.Duration
	MaxAttempts int
	Backoff     time.Duration

	mu    sync.Mutex
	last  time.Time
	cache map[string]cacheEntry
}

// New builds a Client with the default scraping policy.
func New() *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: defaultTimeout},
		UserAgent:   DefaultUserAgent,
		MinDelay:    defaultMinDelay,
		CacheTTL:    defaultCacheTTL,
		MaxAttempts: defaultMaxAttempts,
		Backoff:     defaultBackoff,
	}
}

// Get fetches url, honoring the cache, the inter-request delay and the retry
// budget. The returned body is safe to retain.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpired()
	if e, ok := c.cache[url]; ok && time.Now().Before(e.expires) {
		return e.body, nil
	}

	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.waitDelay(ctx); err != nil {
			return nil, err
		}

		body, retryable, err := c.doOnce(ctx, url)
		if err == nil {
			if c.CacheTTL > 0 {
				if c.cache == nil {
					c.cache = make(map[string]cacheEntry)
				}
				c.cache[url] = cacheEntry{body: body, expires: time.Now().Add(c.CacheTTL)}
			}
			return body, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
		if attempt < attempts {
			log.Printf("[httpx] retrying %s (attempt %d/%d): %v", url, attempt, attempts, err)
			backoff := c.Backoff
			if backoff <= 0 {
				backoff = defaultBackoff
			}
			select {
			case <-time.After(backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("httpx: build request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.7")

	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}

	c.last = time.Now()
	resp, err := httpc.Do(req)
	if err != nil {
		// transport errors (incl. timeouts) are worth one more try
		return nil, true, fmt.Errorf("httpx: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("httpx: get %s: status %d", url, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("httpx: get %s: status %d", url, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("httpx: read %s: %w", url, err)
	}
	return b, false, nil
}

func (c *Client) waitDelay(ctx context.Context) error {
	if c.MinDelay <= 0 || c.last.IsZero() {
		return nil
	}
	wait := c.MinDelay - time.Since(c.last)
	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// evictExpired drops stale cache entries; called opportunistically under mu
// so the cache stays bounded without a background goroutine.
func (c *Client) evictExpired() {
	now := time.Now()
	for k, e := range c.cache {
		if now.After(e.expires) {
			delete(c.cache, k)
		}
	}
}
