// Package storage puts product images into object storage and tracks upload progress.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"
)

// ObjectStore stores one object and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// ObjectKey namespaces an image as product-images/{productId}/{slot}-{unixMillis}-{filename}.
func ObjectKey(productID, slot, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return fmt.Sprintf("product-images/%s/%s-%d-%s", productID, slot, now.UnixMilli(), name)
}

// publicURL joins base and key, escaping each key segment.
func publicURL(base, key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segs, "/")
}
