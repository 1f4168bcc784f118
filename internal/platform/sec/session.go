// Copyright (c) 2026 Aperture. All rights reserved.

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing) from
// the domain logic. It acts as an infrastructure service injected into the
// application layer.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded inside a signed session cookie.
//
// There is a single shared admin credential, so the claims carry no user
// identity beyond the fixed subject. Verifying the signature is the whole
// authentication check; no store lookup happens per request.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionService signs and verifies session cookie tokens using HS256.
//
// # Why HMAC rather than RSA?
//
// One process issues and verifies its own tokens, so a shared secret is
// sufficient and avoids key-file management.
type SessionService struct {
	secret []byte
	issuer string
}

// NewSessionService creates a SessionService from the configured secret.
func NewSessionService(secret, issuer string) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("sec: session secret must be at least 16 bytes")
	}
	return &SessionService{secret: []byte(secret), issuer: issuer}, nil
}

// Issue creates a new signed session token valid for timeToLive.
func (service *SessionService) Issue(subject string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of a session token string.
func (service *SessionService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid session claims")
	}

	return claims, nil
}
