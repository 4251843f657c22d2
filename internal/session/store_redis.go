// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ademarli/municipality-gateway/internal/platform/constants"
)

// RedisTokenStore implements [TokenStore] on Redis.
//
// Records are stored as JSON under the `session:token:` prefix with a TTL, so
// abandoned sessions evaporate without a reaper process.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed [TokenStore].
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

/*
Save persists the session record under the opaque cookie ID.

Parameters:
  - context: context.Context
  - id: string (opaque session ID)
  - record: Record
  - ttl: time.Duration

Returns:
  - error: Marshal or storage failures
*/
func (store *RedisTokenStore) Save(context context.Context, id string, record Record, ttl time.Duration) error {

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("session_record_marshal_failed: %w", err)
	}

	key := constants.RedisPrefixSession + id

	if err := store.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the session record for a cookie ID.

Description: Returns (nil, nil) when the ID is unknown or the record expired;
errors are reserved for connectivity and decoding failures.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Record: The stored session record, or nil
  - error: Storage failures
*/
func (store *RedisTokenStore) Get(context context.Context, id string) (*Record, error) {

	key := constants.RedisPrefixSession + id

	payload, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	record := &Record{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, fmt.Errorf("session_record_unmarshal_failed: %w", err)
	}

	return record, nil
}

/*
Delete removes the session record. Absent IDs are not an error, which keeps
logout idempotent.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Deletion failures
*/
func (store *RedisTokenStore) Delete(context context.Context, id string) error {

	key := constants.RedisPrefixSession + id

	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
