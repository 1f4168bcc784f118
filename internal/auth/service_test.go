// Copyright (c) 2026 Aperture. All rights reserved.

package auth_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aperture/internal/auth"
	"aperture/internal/platform/apperr"
	"aperture/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newService(t *testing.T) *auth.Service {
	t.Helper()

	sessions, err := sec.NewSessionService(testSecret, "aperture.test")
	require.NoError(t, err)

	credentials := auth.NewFileCredentialRepository(t.TempDir())
	return auth.NewService(credentials, sessions, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestService_SetupIsSingleUse(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	require.NoError(t, service.Setup(ctx, "correct horse battery"))

	err := service.Setup(ctx, "another password")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestService_SetupRejectsShortPassword(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	err := service.Setup(ctx, "short")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestService_LoginIssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()

	sessions, err := sec.NewSessionService(testSecret, "aperture.test")
	require.NoError(t, err)
	credentials := auth.NewFileCredentialRepository(t.TempDir())
	service := auth.NewService(credentials, sessions, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	require.NoError(t, service.Setup(ctx, "correct horse battery"))

	token, err := service.Login(ctx, "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	require.NoError(t, service.Setup(ctx, "correct horse battery"))

	_, err := service.Login(ctx, "wrong password")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	assert.Equal(t, "Invalid password", appErr.Message)
}

func TestService_LoginBeforeSetup(t *testing.T) {
	ctx := context.Background()
	service := newService(t)

	_, err := service.Login(ctx, "whatever password")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	assert.Equal(t, "Admin credential not configured", appErr.Message)
}

func TestFileCredentialRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := auth.NewFileCredentialRepository(t.TempDir())

	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, auth.ErrNoCredential)

	require.NoError(t, repo.Set(ctx, "$2a$10$fakehash"))

	hash, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$fakehash", hash)
}
