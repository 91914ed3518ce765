package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultCacheTTL is how long a crawled page stays fresh.
const DefaultCacheTTL = 24 * time.Hour

// CrawledPage is a cached crawl result
type CrawledPage struct {
	ID             uuid.UUID `json:"id"`
	URL            string    `json:"url"`
	Markdown       string    `json:"markdown"`
	Source         string    `json:"source"`
	ContentHash    string    `json:"content_hash"`
	FetchedAt      time.Time `json:"fetched_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsExpired reports whether the page is past its expiry at now
func (p *CrawledPage) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// HashContent computes SHA-256 hash of content for change detection
func HashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

const pageColumns = `id, url, markdown, source, content_hash, fetched_at, expires_at, last_accessed_at, created_at, updated_at`

func scanPage(row pgx.Row) (*CrawledPage, error) {
	var p CrawledPage
	err := row.Scan(&p.ID, &p.URL, &p.Markdown, &p.Source, &p.ContentHash,
		&p.FetchedAt, &p.ExpiresAt, &p.LastAccessedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPage retrieves a cached page by URL, expired or not. It returns nil when absent.
func (db *DB) GetPage(ctx context.Context, pageURL string) (*CrawledPage, error) {
	page, err := scanPage(db.pool.QueryRow(ctx,
		`SELECT `+pageColumns+` FROM crawled_pages WHERE url = $1`,
		pageURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get crawled page: %w", err)
	}
	return page, nil
}

// GetFreshPage retrieves a page only if it has not expired, and marks it accessed
func (db *DB) GetFreshPage(ctx context.Context, pageURL string) (*CrawledPage, error) {
	page, err := scanPage(db.pool.QueryRow(ctx,
		`UPDATE crawled_pages SET last_accessed_at = NOW()
		 WHERE url = $1 AND expires_at > NOW()
		 RETURNING `+pageColumns,
		pageURL,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fresh crawled page: %w", err)
	}
	return page, nil
}

// UpsertPage inserts or replaces the cached page for page.URL. A zero ExpiresAt
// uses DefaultCacheTTL. Generated fields are written back into page.
func (db *DB) UpsertPage(ctx context.Context, page *CrawledPage) error {
	if page.ExpiresAt.IsZero() {
		page.ExpiresAt = time.Now().Add(DefaultCacheTTL)
	}
	page.ContentHash = HashContent(page.Markdown)

	err := db.pool.QueryRow(ctx,
		`INSERT INTO crawled_pages (url, markdown, source, content_hash, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, NOW(), $5)
		 ON CONFLICT (url) DO UPDATE SET
		     markdown = $2,
		     source = $3,
		     content_hash = $4,
		     fetched_at = NOW(),
		     expires_at = $5,
		     updated_at = NOW()
		 RETURNING id, fetched_at, last_accessed_at, created_at, updated_at`,
		page.URL, page.Markdown, page.Source, page.ContentHash, page.ExpiresAt,
	).Scan(&page.ID, &page.FetchedAt, &page.LastAccessedAt, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert crawled page: %w", err)
	}
	return nil
}

// DeletePage removes the cached page for pageURL
func (db *DB) DeletePage(ctx context.Context, pageURL string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM crawled_pages WHERE url = $1`, pageURL); err != nil {
		return fmt.Errorf("failed to delete crawled page: %w", err)
	}
	return nil
}

// DeleteExpiredPages removes pages that have passed their expires_at
func (db *DB) DeleteExpiredPages(ctx context.Context) (int64, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM crawled_pages WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired pages: %w", err)
	}
	return result.RowsAffected(), nil
}
