package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore writes artifacts below a directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates a store rooted at dir. The directory is created on first write.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Put writes body to root/key and returns the file path.
func (s *LocalStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", &Error{Op: "put", Key: key, Cause: err}
	}

	target := filepath.Join(s.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", &Error{Op: "put", Key: key, Cause: err}
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return "", &Error{Op: "put", Key: key, Cause: err}
	}
	return target, nil
}

// Get reads root/key.
func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleaned, err := cleanKey(key)
	if err != nil {
		return nil, &Error{Op: "get", Key: key, Cause: err}
	}

	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(cleaned)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &Error{Op: "get", Key: key, Cause: ErrNotFound}
	}
	if err != nil {
		return nil, &Error{Op: "get", Key: key, Cause: err}
	}
	return data, nil
}
