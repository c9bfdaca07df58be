// blob.go - Storage port for uploaded item attachments, plus the local-disk
// implementation that backs the default deployment.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// Multipart part names double as storage subdirectories.
	blobKindImage  = "images"
	blobKindSource = "sources"

	uploadsPrefix = "/uploads/"
)

// BlobStore stores uploaded attachments. Save writes one named part and
// returns the relative URL the blob is served under, e.g.
// "/uploads/images/1712345678901-logo.png". Remove skips blobs that are
// already gone rather than erroring.
type BlobStore interface {
	Save(ctx context.Context, kind, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, relURL string) error
	Open(ctx context.Context, relURL string) (io.ReadCloser, error)
}

// blobName builds "<unix-millis>-<original-filename>". Two uploads of the
// same name in the same millisecond collide; last write wins.
func blobName(filename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename))
}

// relativeBlobPath strips the /uploads/ prefix and rejects anything that
// would escape the storage root. Returns "" for foreign or malformed URLs.
func relativeBlobPath(relURL string) string {
	rel := strings.TrimPrefix(relURL, uploadsPrefix)
	if rel == relURL || rel == "" {
		return ""
	}
	rel = path.Clean(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}

// diskBlobStore keeps blobs under <root>/images and <root>/sources.
type diskBlobStore struct {
	root string
}

// NewDiskBlobStore creates the upload subdirectories under root.
func NewDiskBlobStore(root string) (BlobStore, error) {
	for _, kind := range []string{blobKindImage, blobKindSource} {
		if err := os.MkdirAll(filepath.Join(root, kind), 0o755); err != nil {
			return nil, err
		}
	}
	return &diskBlobStore{root: root}, nil
}

func (d *diskBlobStore) localPath(relURL string) string {
	rel := relativeBlobPath(relURL)
	if rel == "" {
		return ""
	}
	return filepath.Join(d.root, filepath.FromSlash(rel))
}

func (d *diskBlobStore) Save(_ context.Context, kind, filename string, r io.Reader) (string, error) {
	name := blobName(filename)
	dst, err := os.Create(filepath.Join(d.root, kind, name))
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}
	return uploadsPrefix + kind + "/" + name, nil
}

func (d *diskBlobStore) Remove(_ context.Context, relURL string) error {
	p := d.localPath(relURL)
	if p == "" {
		return nil
	}
	// Existence is pre-checked: a blob that is already gone is skipped.
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	return os.Remove(p)
}

func (d *diskBlobStore) Open(_ context.Context, relURL string) (io.ReadCloser, error) {
	p := d.localPath(relURL)
	if p == "" {
		return nil, os.ErrNotExist
	}
	return os.Open(p)
}
