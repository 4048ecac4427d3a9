package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrObjectExists is returned when an upload targets a key that is already taken
var ErrObjectExists = errors.New("the resource already exists")

// ObjectStore stores binaries under a path key and resolves public URLs
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader) (string, error)
	PublicURL(key string) string
}

// ObjectKey builds the key product images are stored under
func ObjectKey(filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("products/%d_%s", now.UnixMilli(), name)
}

// FileStore keeps objects on the local filesystem under Root/Bucket. Files are
// served back through the HTTP server's static route at PublicBase.
type FileStore struct {
	Root       string
	Bucket     string
	PublicBase string
}

// NewFileStore creates the bucket directory if needed
func NewFileStore(root, bucket, publicBase string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(root, bucket), 0o755); err != nil {
		return nil, fmt.Errorf("create bucket directory: %w", err)
	}
	return &FileStore{Root: root, Bucket: bucket, PublicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Upload writes r under key. An existing object at key is never replaced.
func (s *FileStore) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	dest := filepath.Join(s.Root, s.Bucket, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrObjectExists
		}
		return "", err
	}

	if _, err := io.Copy(f, &ctxReader{ctx: ctx, r: r}); err != nil {
		f.Close()
		os.Remove(dest)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", err
	}

	return s.PublicURL(clean), nil
}

// PublicURL resolves the URL an object is served at
func (s *FileStore) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.PublicBase + "/" + url.PathEscape(s.Bucket) + "/" + strings.Join(segments, "/")
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
