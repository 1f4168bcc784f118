// Copyright (c) 2026 Aperture. All rights reserved.

package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options holds the connection settings for the MinIO client.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore implements [Store] against a MinIO / S3-compatible service.
type MinioStore struct {
	client *minio.Client
	opts   Options
	logger *slog.Logger
}

// NewMinioStore constructs the client and ensures the bucket exists.
func NewMinioStore(ctx context.Context, opts Options, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob: failed to construct minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("blob: bucket check failed: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("blob: failed to create bucket %q: %w", opts.Bucket, err)
		}
		logger.Info("blob_bucket_created", slog.String("bucket", opts.Bucket))
	}

	logger.Info("blob_store_connected",
		slog.String("endpoint", opts.Endpoint),
		slog.String("bucket", opts.Bucket),
	)

	return &MinioStore{client: client, opts: opts, logger: logger}, nil
}

// Upload stores the object and returns its public URL.
func (store *MinioStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := store.client.PutObject(ctx, store.opts.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("blob: upload of %q failed: %w", objectName, err)
	}

	return store.publicURL(objectName), nil
}

// Remove deletes the object referenced by the given public URL.
//
// URLs that do not point into this bucket are rejected rather than
// guessed at.
func (store *MinioStore) Remove(ctx context.Context, rawURL string) error {
	objectName, err := store.objectNameFromURL(rawURL)
	if err != nil {
		return err
	}

	if err := store.client.RemoveObject(ctx, store.opts.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("blob: remove of %q failed: %w", objectName, err)
	}
	return nil
}

// Ping verifies the object store is reachable.
func (store *MinioStore) Ping(ctx context.Context) error {
	if _, err := store.client.BucketExists(ctx, store.opts.Bucket); err != nil {
		return fmt.Errorf("blob: ping failed: %w", err)
	}
	return nil
}

// publicURL composes the externally reachable URL for an object.
func (store *MinioStore) publicURL(objectName string) string {
	scheme := "http"
	if store.opts.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, store.opts.Endpoint, store.opts.Bucket, objectName)
}

// objectNameFromURL extracts the object key from a public URL.
func (store *MinioStore) objectNameFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("blob: invalid asset URL %q: %w", rawURL, err)
	}

	prefix := "/" + store.opts.Bucket + "/"
	if !strings.HasPrefix(parsed.Path, prefix) {
		return "", fmt.Errorf("blob: asset URL %q is outside bucket %q", rawURL, store.opts.Bucket)
	}
	return strings.TrimPrefix(parsed.Path, prefix), nil
}
