// Package session implements the session store port on Redis, with an
// in-memory variant for tests and local development.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwhwang/atmbank/pkg/session"
)

// RedisStore keeps one session token per user in Redis, keyed by the user id
// under a configurable prefix, expiring after the configured TTL of
// inactivity.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisStore creates a RedisStore from redis.Options.
func NewRedisStore(opt *redis.Options, prefix string, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(opt),
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

var _ session.Store = (*RedisStore)(nil)

func (s *RedisStore) key(userID int64) string {
	return s.prefix + strconv.FormatInt(userID, 10)
}

// SetSession implements session.Store. SET overwrites any previous token, so
// a user has a single active session.
func (s *RedisStore) SetSession(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(userID), token, s.ttl).Err(); err != nil {
		s.logger.Error("failed to store session", "user_id", userID, "error", err)
		return "", err
	}
	return token, nil
}

// ValidateUserSession implements session.Store. An expired key is gone from
// Redis, so expiry and absence are the same false.
func (s *RedisStore) ValidateUserSession(ctx context.Context, userID int64, token string) (bool, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("failed to read session", "user_id", userID, "error", err)
		return false, err
	}
	return token != "" && val == token, nil
}

// ExtendSession implements session.Store. EXPIRE on a missing key is a no-op.
func (s *RedisStore) ExtendSession(ctx context.Context, userID int64) error {
	return s.client.Expire(ctx, s.key(userID), s.ttl).Err()
}
