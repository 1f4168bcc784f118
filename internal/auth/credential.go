// Copyright (c) 2026 Aperture. All rights reserved.

// Package auth implements the single shared-password admin credential and
// its cookie session lifecycle.
//
// There are no user accounts: one bcrypt hash, created once through the
// setup endpoint, gates the whole admin surface.
package auth

import (
	"context"
	"errors"
)

// ErrNoCredential is returned when no admin credential has been created yet.
// While it holds, the setup endpoint is open and login always fails.
var ErrNoCredential = errors.New("auth: admin credential not configured")

// CredentialRepository stores the single admin password hash. Like the
// image records, it has a remote key-value variant and a local file
// variant, selected once at startup by configuration presence.
type CredentialRepository interface {
	// Get returns the stored bcrypt hash, or [ErrNoCredential].
	Get(ctx context.Context) (string, error)

	// Set stores the bcrypt hash, overwriting any previous value.
	Set(ctx context.Context, hash string) error
}
