// Copyright (c) 2026 Aperture. All rights reserved.

/*
Package blob provides the external object storage client holding image bytes.

Records reference assets only by URL; this package owns the mapping between
object keys and public URLs. Everything durable about the binary itself is
delegated to the S3-compatible service (MinIO).
*/
package blob

import (
	"context"
	"errors"
	"io"
)

// Store is the capability the gallery service needs from object storage.
//
// # Contract
//
// Upload returns the public URL of the stored object. Remove accepts the
// same URL and is best-effort from the caller's perspective: asset-store
// failure must never block metadata cleanup.
type Store interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
	Ping(ctx context.Context) error
}

// Unconfigured is the Store used when no object storage is configured.
// Uploads fail cleanly; removals succeed so record cleanup still works.
type Unconfigured struct{}

func (Unconfigured) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return "", errors.New("blob: object storage is not configured")
}

func (Unconfigured) Remove(ctx context.Context, url string) error { return nil }

func (Unconfigured) Ping(ctx context.Context) error {
	return errors.New("blob: object storage is not configured")
}
