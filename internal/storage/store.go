// Package storage puts rendered documents somewhere they can be shared: a local
// directory or an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("object not found")

// Store saves and loads artifacts by key.
type Store interface {
	// Put stores body under key and returns a location string describing where it went.
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
	// Get returns the bytes stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
}

// Error wraps a failed storage operation
type Error struct {
	Op    string
	Key   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ArtifactKey builds a unique, date-prefixed key for fileName, e.g.
// "resumes/2024/05/01/<uuid>/Acme - Resume.docx".
func ArtifactKey(prefix, fileName string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "artifact"
	}
	return path.Join(prefix, now.UTC().Format("2006/01/02"), uuid.NewString(), name)
}

// cleanKey rejects keys that would escape the store root.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("empty key")
	}
	return cleaned, nil
}
