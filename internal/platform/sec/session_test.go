// Copyright (c) 2026 Aperture. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aperture/internal/platform/sec"
)

func TestSessionService_IssueAndVerify(t *testing.T) {
	service, err := sec.NewSessionService("0123456789abcdef", "aperture.test")
	require.NoError(t, err)

	token, err := service.Issue("admin", time.Hour)
	require.NoError(t, err)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "aperture.test", claims.Issuer)
}

func TestSessionService_RejectsShortSecret(t *testing.T) {
	_, err := sec.NewSessionService("tooshort", "aperture.test")
	require.Error(t, err)
}

func TestSessionService_RejectsExpiredToken(t *testing.T) {
	service, err := sec.NewSessionService("0123456789abcdef", "aperture.test")
	require.NoError(t, err)

	token, err := service.Issue("admin", -time.Minute)
	require.NoError(t, err)

	_, err = service.Verify(token)
	require.Error(t, err)
}

func TestSessionService_RejectsForeignSignature(t *testing.T) {
	issuer, err := sec.NewSessionService("0123456789abcdef", "aperture.test")
	require.NoError(t, err)
	verifier, err := sec.NewSessionService("fedcba9876543210", "aperture.test")
	require.NoError(t, err)

	token, err := issuer.Issue("admin", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}
