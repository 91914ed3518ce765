package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/crawl"
)

type fakePageStore struct {
	pages    map[string]*CrawledPage
	err      error
	upserted []*CrawledPage
}

func (f *fakePageStore) GetFreshPage(ctx context.Context, pageURL string) (*CrawledPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[pageURL], nil
}

func (f *fakePageStore) UpsertPage(ctx context.Context, page *CrawledPage) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, page)
	return nil
}

func TestPageCache_Lookup(t *testing.T) {
	store := &fakePageStore{pages: map[string]*CrawledPage{
		"https://hit.example":   {URL: "https://hit.example", Markdown: "# Role"},
		"https://empty.example": {URL: "https://empty.example"},
	}}
	cache := NewPageCache(store, 0)

	text, ok, err := cache.Lookup(context.Background(), "https://hit.example")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "# Role", text)

	_, ok, err = cache.Lookup(context.Background(), "https://miss.example")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cache.Lookup(context.Background(), "https://empty.example")
	require.NoError(t, err)
	assert.False(t, ok, "empty entries are misses")
}

func TestPageCache_LookupError(t *testing.T) {
	cache := NewPageCache(&fakePageStore{err: errors.New("connection refused")}, time.Hour)

	_, ok, err := cache.Lookup(context.Background(), "https://a.example")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPageCache_Store(t *testing.T) {
	store := &fakePageStore{}
	cache := NewPageCache(store, 2*time.Hour)
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return fixed }

	require.NoError(t, cache.Store(context.Background(), "https://a.example", "text", crawl.SourceScrape))

	require.Len(t, store.upserted, 1)
	page := store.upserted[0]
	assert.Equal(t, "https://a.example", page.URL)
	assert.Equal(t, "text", page.Markdown)
	assert.Equal(t, "scrape", page.Source)
	assert.Equal(t, fixed.Add(2*time.Hour), page.ExpiresAt)
}

func TestNewPageCache_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultCacheTTL, NewPageCache(&fakePageStore{}, -time.Second).ttl)
}

func TestCrawledPage_IsExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&CrawledPage{ExpiresAt: now.Add(time.Minute)}).IsExpired(now))
	assert.True(t, (&CrawledPage{ExpiresAt: now}).IsExpired(now))
	assert.True(t, (&CrawledPage{ExpiresAt: now.Add(-time.Minute)}).IsExpired(now))
}

func TestHashContent(t *testing.T) {
	assert.Equal(t, HashContent("abc"), HashContent("abc"))
	assert.NotEqual(t, HashContent("abc"), HashContent("abd"))
	assert.Len(t, HashContent(""), 64)
}
