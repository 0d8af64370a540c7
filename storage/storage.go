// Package storage uploads admin files to object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// ObjectStorage writes files by key and hands back a retrievable URL.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds "{prefix}/{unixMillis}_{filename}". Only the base name of
// the uploaded filename is kept.
func ObjectKey(prefix, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("%s/%d_%s", prefix, now.UnixMilli(), name)
}
