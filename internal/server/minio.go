// minio.go - Optional MinIO-backed blob store. When the SHD_S3_* variables
// are set, uploaded attachments live in a bucket instead of the local
// uploads directory; the relative URLs stay identical either way.
package server

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	// Accept either "minio:9000" or "http://minio:9000" / "https://minio:9000".
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	// No scheme provided, treat as host:port (insecure by default for local MinIO).
	return raw, false, nil
}

type minioBlobStore struct {
	client *minio.Client
	bucket string
}

// NewMinioBlobStoreFromEnv builds the MinIO blob store from SHD_S3_ENDPOINT,
// SHD_S3_ACCESS_KEY, SHD_S3_SECRET_KEY and SHD_BUCKET. When none of the
// variables are set it returns (nil, nil) and the caller falls back to local
// disk; a partially set group is a configuration error.
func NewMinioBlobStoreFromEnv() (BlobStore, error) {
	rawEndpoint := os.Getenv("SHD_S3_ENDPOINT")
	accessKey := os.Getenv("SHD_S3_ACCESS_KEY")
	secretKey := os.Getenv("SHD_S3_SECRET_KEY")
	bucket := os.Getenv("SHD_BUCKET")

	if rawEndpoint == "" && accessKey == "" && secretKey == "" && bucket == "" {
		return nil, nil
	}
	if rawEndpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, fmt.Errorf("minio configuration incomplete")
	}

	endpoint, secure, err := normaliseEndpoint(rawEndpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	// Sanity check: bucket must exist.
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("minio bucket does not exist: %s", bucket)
	}

	return &minioBlobStore{client: client, bucket: bucket}, nil
}

// NewMinioBlobStore wraps an existing client; used by the e2e suite.
func NewMinioBlobStore(client *minio.Client, bucket string) BlobStore {
	return &minioBlobStore{client: client, bucket: bucket}
}

func (m *minioBlobStore) Save(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	name := blobName(filename)
	key := kind + "/" + name
	_, err := m.client.PutObject(ctx, m.bucket, key, r, -1, minio.PutObjectOptions{})
	if err != nil {
		return "", err
	}
	return uploadsPrefix + key, nil
}

func (m *minioBlobStore) Remove(ctx context.Context, relURL string) error {
	key := relativeBlobPath(relURL)
	if key == "" {
		return nil
	}
	// Existence is pre-checked so a missing object is skipped, matching the
	// disk store's delete semantics.
	if _, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{}); err != nil {
		return nil
	}
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

func (m *minioBlobStore) Open(ctx context.Context, relURL string) (io.ReadCloser, error) {
	key := relativeBlobPath(relURL)
	if key == "" {
		return nil, os.ErrNotExist
	}
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; surface a missing object to the caller now.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, os.ErrNotExist
	}
	return obj, nil
}
