// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avolkov/critica/internal/platform/apperr"
	"github.com/avolkov/critica/internal/platform/constants"
)

// RedisCodeRepository implements CodeRepository using Redis.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewCodeRepository creates a new Redis-backed CodeRepository.
func NewCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

/*
Set stores the confirmation code hash for a username with a TTL.

Description: Keys are per-username, so issuing a new code atomically
invalidates the cached previous one.

Parameters:
  - context: context.Context
  - username: string
  - codeHash: string
  - timeToLive: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisCodeRepository) Set(context context.Context, username, codeHash string, timeToLive time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixConfirmationCode + username

	// Set the hash with TTL
	if err := repository.client.Set(context, key, codeHash, timeToLive).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the confirmation code hash for a username.

Description: Returns apperr.NotFound if the entry is absent or expired.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - string: The bcrypt hash of the last issued code
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisCodeRepository) Get(context context.Context, username string) (string, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixConfirmationCode + username

	// Get the hash from Redis
	codeHash, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code is invalid or expired")
		}
		return "", fmt.Errorf("redis_confirmation_code_get_failed: %w", err)
	}

	// Return the hash
	return codeHash, nil
}

/*
Delete removes the confirmation code entry for a username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Execution errors
*/
func (repository *RedisCodeRepository) Delete(context context.Context, username string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixConfirmationCode + username

	// Delete the entry
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
