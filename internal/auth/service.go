// Copyright (c) 2026 Aperture. All rights reserved.

package auth

import (
	"context"
	"errors"
	"log/slog"

	"aperture/internal/platform/apperr"
	"aperture/internal/platform/constants"
	"aperture/internal/platform/sec"
	"aperture/internal/platform/validate"
)

// minPasswordLength is enforced at setup only. Login compares against the
// stored hash regardless of length so existing credentials keep working.
const minPasswordLength = 8

// Service implements the admin credential lifecycle: one-time setup,
// login issuing a session token, and verification of stored passwords.
type Service struct {
	credentials CredentialRepository
	sessions    *sec.SessionService
	logger      *slog.Logger
}

func NewService(credentials CredentialRepository, sessions *sec.SessionService, logger *slog.Logger) *Service {
	return &Service{
		credentials: credentials,
		sessions:    sessions,
		logger:      logger,
	}
}

// Setup creates the single admin credential.
//
// Intended single-use: once a credential exists the endpoint answers
// Conflict forever after. Operationally the route should also be removed
// or blocked after first use.
func (service *Service) Setup(context context.Context, password string) error {
	validator := &validate.Validator{}
	validator.Required("password", password).MinLen("password", password, minPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	_, err := service.credentials.Get(context)
	switch {
	case err == nil:
		return apperr.Conflict("Admin credential already exists")
	case !errors.Is(err, ErrNoCredential):
		return apperr.Internal(err)
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.credentials.Set(context, hash); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("admin_credential_created")
	return nil
}

// Login verifies the shared password and issues a signed session token.
func (service *Service) Login(context context.Context, password string) (string, error) {
	if password == "" {
		return "", validate.RequiredError("password", "This field is required")
	}

	hash, err := service.credentials.Get(context)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return "", apperr.Unauthorized("Admin credential not configured")
		}
		return "", apperr.Internal(err)
	}

	if !sec.CheckPasswordHash(password, hash) {
		service.logger.Warn("admin_login_rejected")
		return "", apperr.Unauthorized("Invalid password")
	}

	token, err := service.sessions.Issue("admin", constants.SessionTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}

	service.logger.Info("admin_login_succeeded")
	return token, nil
}
