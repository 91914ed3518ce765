package db

import (
	"context"
	"time"

	"github.com/jonathan/resume-studio/internal/crawl"
)

// PageStore is the subset of *DB used by PageCache.
type PageStore interface {
	GetFreshPage(ctx context.Context, pageURL string) (*CrawledPage, error)
	UpsertPage(ctx context.Context, page *CrawledPage) error
}

// PageCache adapts a PageStore to crawl.Cache.
type PageCache struct {
	store PageStore
	ttl   time.Duration
	now   func() time.Time
}

// NewPageCache creates a cache whose entries live for ttl. A non-positive ttl uses DefaultCacheTTL.
func NewPageCache(store PageStore, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &PageCache{store: store, ttl: ttl, now: time.Now}
}

// Lookup returns the cached text for pageURL when a fresh entry exists.
func (c *PageCache) Lookup(ctx context.Context, pageURL string) (string, bool, error) {
	page, err := c.store.GetFreshPage(ctx, pageURL)
	if err != nil {
		return "", false, err
	}
	if page == nil || page.Markdown == "" {
		return "", false, nil
	}
	return page.Markdown, true, nil
}

// Store caches text for pageURL.
func (c *PageCache) Store(ctx context.Context, pageURL, text string, source crawl.Source) error {
	return c.store.UpsertPage(ctx, &CrawledPage{
		URL:       pageURL,
		Markdown:  text,
		Source:    string(source),
		ExpiresAt: c.now().Add(c.ttl),
	})
}

var _ crawl.Cache = (*PageCache)(nil)
