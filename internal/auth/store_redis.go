// Copyright (c) 2026 Aperture. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"aperture/internal/platform/constants"
)

// RedisCredentialRepository implements CredentialRepository using Redis.
type RedisCredentialRepository struct {
	client *redis.Client
}

// NewRedisCredentialRepository creates a new Redis-backed CredentialRepository.
func NewRedisCredentialRepository(client *redis.Client) *RedisCredentialRepository {
	return &RedisCredentialRepository{client: client}
}

/*
Get retrieves the stored admin password hash.

Returns:
  - string: bcrypt hash
  - error: ErrNoCredential when unset, or connectivity errors
*/
func (repository *RedisCredentialRepository) Get(context context.Context) (string, error) {
	hash, err := repository.client.Get(context, constants.RedisKeyCredential).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("redis_credential_get_failed: %w", err)
	}
	return hash, nil
}

/*
Set stores the admin password hash.

No TTL: the credential lives until replaced.
*/
func (repository *RedisCredentialRepository) Set(context context.Context, hash string) error {
	if err := repository.client.Set(context, constants.RedisKeyCredential, hash, 0).Err(); err != nil {
		return fmt.Errorf("redis_credential_set_failed: %w", err)
	}
	return nil
}
