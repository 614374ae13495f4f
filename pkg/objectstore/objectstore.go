// Package objectstore wraps the hosted object storage service the
// store keeps product images in: binary upload plus public-URL
// resolution, nothing more.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the storage capability the editor pipeline consumes.
type ObjectStore interface {
	// Upload writes an object at path, silently replacing any object
	// already stored there.
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error
	// PublicURL resolves the browser-reachable URL of a stored object.
	PublicURL(path string) string
}

// Config holds connection details for an S3-compatible storage service.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the address browsers fetch objects from, e.g. a
	// CDN in front of the bucket. Defaults to the endpoint itself.
	PublicBaseURL string
}

// MinioStore is an ObjectStore backed by a MinIO/S3 bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	base   string
}

// NewMinioStore connects to the storage service and ensures the
// configured bucket exists.
func NewMinioStore(cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		base:   strings.TrimSuffix(base, "/"),
	}, nil
}

// Upload stores an object at path, overwriting any existing object.
func (s *MinioStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", path, err)
	}
	return nil
}

// PublicURL returns the public address of a stored object. The bucket
// is expected to allow anonymous reads, matching the hosted storage
// the storefront serves images from.
func (s *MinioStore) PublicURL(path string) string {
	return s.base + "/" + strings.TrimPrefix(path, "/")
}
