package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cliniclink/cliniclink/internal/common"
	"github.com/redis/go-redis/v9"
)

// CodeStore holds pending MFA challenges. A challenge is a short-lived
// one-time code bound to a user; verification is attempt-capped.
type CodeStore interface {
	// Issue stores a code for the challenge with the configured TTL.
	Issue(ctx context.Context, challengeID, userID, code string) error
	// Verify checks the code. On success the challenge is consumed and the
	// bound user ID returned. Failures map to common.ErrMFACodeExpired,
	// common.ErrMFACodeInvalid, or common.ErrMFATooManyAttempts.
	Verify(ctx context.Context, challengeID, code string) (string, error)
}

// RedisCodeStore implements CodeStore on Redis. TTL handles expiry; an
// attempts counter with the same TTL enforces the cap.
type RedisCodeStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxAttempts int
}

func NewRedisCodeStore(client *redis.Client, ttl time.Duration, maxAttempts int) *RedisCodeStore {
	return &RedisCodeStore{client: client, ttl: ttl, maxAttempts: maxAttempts}
}

func codeKey(id string) string     { return "mfa:code:" + id }
func userKey(id string) string     { return "mfa:user:" + id }
func attemptsKey(id string) string { return "mfa:att:" + id }

func (s *RedisCodeStore) Issue(ctx context.Context, challengeID, userID, code string) error {
	if err := s.client.Set(ctx, codeKey(challengeID), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing mfa code: %w", err)
	}
	if err := s.client.Set(ctx, userKey(challengeID), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing mfa user: %w", err)
	}
	if err := s.client.Set(ctx, attemptsKey(challengeID), 0, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing mfa attempts: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) Verify(ctx context.Context, challengeID, code string) (string, error) {
	attempts, err := s.client.Incr(ctx, attemptsKey(challengeID)).Result()
	if err != nil {
		return "", fmt.Errorf("incrementing mfa attempts: %w", err)
	}
	if attempts == 1 {
		// INCR recreates the counter when the challenge keys already
		// expired, or when the challenge never existed at all. Give it the
		// challenge TTL so it cannot outlive the challenge.
		if err := s.client.Expire(ctx, attemptsKey(challengeID), s.ttl).Err(); err != nil {
			return "", fmt.Errorf("expiring mfa attempts: %w", err)
		}
	}
	if attempts > int64(s.maxAttempts) {
		s.client.Del(ctx, codeKey(challengeID), userKey(challengeID), attemptsKey(challengeID))
		return "", common.ErrMFATooManyAttempts
	}

	stored, err := s.client.Get(ctx, codeKey(challengeID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", common.ErrMFACodeExpired
	}
	if err != nil {
		return "", fmt.Errorf("reading mfa code: %w", err)
	}

	if stored != code {
		return "", common.ErrMFACodeInvalid
	}

	userID, err := s.client.Get(ctx, userKey(challengeID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", common.ErrMFACodeExpired
	}
	if err != nil {
		return "", fmt.Errorf("reading mfa user: %w", err)
	}

	// One-time: a verified challenge cannot be replayed.
	s.client.Del(ctx, codeKey(challengeID), userKey(challengeID), attemptsKey(challengeID))
	return userID, nil
}

// generateMFACode returns a 6-digit numeric code from crypto/rand.
func generateMFACode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
