package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes objects under Dir and serves them from BaseURL (the guarded
// /media route). It backs local development when no bucket is configured.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func (d *DiskStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	full := filepath.Join(d.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, contextReader{ctx: ctx, r: body}); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return publicURL(d.BaseURL, key), nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
