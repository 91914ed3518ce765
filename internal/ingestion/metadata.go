package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes a saved job description.
type Metadata struct {
	URL       string `json:"url"`
	FetchedAt string `json:"fetched_at"` // RFC3339
	Hash      string `json:"hash"`       // SHA256 hex digest of the saved text
	Source    string `json:"source"`
	Partial   bool   `json:"partial,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Chars     int    `json:"chars"`
	Bullets   int    `json:"bullets"`
}

// NewMetadata builds the record for text fetched from url at now.
func NewMetadata(url, text, source string, partial bool, now time.Time) *Metadata {
	return &Metadata{
		URL:       url,
		FetchedAt: now.UTC().Format(time.RFC3339),
		Hash:      computeHash(text),
		Source:    source,
		Partial:   partial,
		Chars:     len(text),
		Bullets:   CountBullets(text),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to indented JSON.
func (m *Metadata) ToJSON() ([]byte, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return b, nil
}
