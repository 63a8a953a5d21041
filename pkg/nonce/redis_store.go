package nonce

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// keyPrefix is the Redis key prefix for consumed digests
	keyPrefix = "eip712:digest"

	stateReserved = "reserved"
	stateUsed     = "used"
)

// RedisStore implements Store using Redis
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed store with DefaultTTL
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return NewRedisStoreWithTTL(client, DefaultTTL, logger)
}

// NewRedisStoreWithTTL creates a Redis-backed store with a custom TTL
func NewRedisStoreWithTTL(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// buildKey creates a Redis key from signer and digest
// Format: eip712:digest:{lowercase_signer}:{digest}
func buildKey(signer common.Address, digest common.Hash) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, strings.ToLower(signer.Hex()), digest.Hex())
}

// Reserve claims a digest using SETNX
func (s *RedisStore) Reserve(ctx context.Context, signer common.Address, digest common.Hash) error {
	key := buildKey(signer, digest)

	// SETNX with TTL - only succeeds if key doesn't exist
	ok, err := s.client.SetNX(ctx, key, stateReserved, s.ttl).Result()
	if err != nil {
		s.logger.Error("failed to reserve digest",
			zap.String("signer", signer.Hex()),
			zap.String("digest", digest.Hex()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to reserve digest: %w", err)
	}

	if !ok {
		s.logger.Warn("digest already used or reserved",
			zap.String("signer", signer.Hex()),
			zap.String("digest", digest.Hex()),
		)
		return ErrAlreadyUsed
	}

	s.logger.Debug("digest reserved",
		zap.String("signer", signer.Hex()),
		zap.String("digest", digest.Hex()),
	)
	return nil
}

// MarkUsed marks a reserved digest as consumed
func (s *RedisStore) MarkUsed(ctx context.Context, signer common.Address, digest common.Hash) error {
	key := buildKey(signer, digest)

	if err := s.client.Set(ctx, key, stateUsed, s.ttl).Err(); err != nil {
		s.logger.Error("failed to mark digest as used",
			zap.String("signer", signer.Hex()),
			zap.String("digest", digest.Hex()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to mark digest as used: %w", err)
	}

	s.logger.Debug("digest marked as used",
		zap.String("signer", signer.Hex()),
		zap.String("digest", digest.Hex()),
	)
	return nil
}

// Release drops a reservation, allowing retry
func (s *RedisStore) Release(ctx context.Context, signer common.Address, digest common.Hash) error {
	key := buildKey(signer, digest)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("failed to release digest",
			zap.String("signer", signer.Hex()),
			zap.String("digest", digest.Hex()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to release digest: %w", err)
	}

	s.logger.Debug("digest released",
		zap.String("signer", signer.Hex()),
		zap.String("digest", digest.Hex()),
	)
	return nil
}
