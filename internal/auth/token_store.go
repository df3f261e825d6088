package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:token:"

// TokenStore tracks revoked access tokens in Redis. Logout blacklists the
// presented token's jti until its natural expiry; the auth middleware rejects
// blacklisted tokens.
type TokenStore struct {
	client *redis.Client
}

// NewRedisClient connects to Redis from a URL and verifies the connection.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Blacklist marks a token id as revoked for the remaining token lifetime.
// A non-positive TTL means the token is already expired and needs no entry.
func (s *TokenStore) Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err()
}

// IsBlacklisted reports whether a token id has been revoked.
func (s *TokenStore) IsBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
