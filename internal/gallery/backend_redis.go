package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"aperture/internal/platform/constants"
)

// RedisBackend persists the record set as a single JSON document under one
// key in the remote key-value service. It is the primary backend whenever
// a Redis URL is configured.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend creates a RedisBackend on the shared client.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client, key: constants.RedisKeyImages}
}

func (backend *RedisBackend) Name() string { return "redis" }

// Load fetches and decodes the record document. A missing key means an
// empty gallery, not an error.
func (backend *RedisBackend) Load(ctx context.Context) ([]ImageRecord, error) {
	data, err := backend.client.Get(ctx, backend.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []ImageRecord{}, nil
		}
		return nil, fmt.Errorf("gallery: redis load failed: %w", err)
	}

	var records []ImageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("gallery: corrupt record document: %w", err)
	}
	if records == nil {
		records = []ImageRecord{}
	}
	return records, nil
}

// Save replaces the record document. No TTL: records live until deleted.
func (backend *RedisBackend) Save(ctx context.Context, records []ImageRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("gallery: failed to encode records: %w", err)
	}

	if err := backend.client.Set(ctx, backend.key, data, 0).Err(); err != nil {
		return fmt.Errorf("gallery: redis save failed: %w", err)
	}
	return nil
}
