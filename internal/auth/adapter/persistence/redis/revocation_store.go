package redis

import (
	"context"
	"crypto/tls"
	"time"

	"bistro-boss/internal/auth/config"
	"bistro-boss/internal/auth/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RevocationStore keeps one key per revoked token id. Each key expires when the token
// itself would have, so the set never outgrows the live tokens.
type RevocationStore struct {
	client *redis.Client
	prefix string
}

// NewRedisClient creates a Redis client from the auth configuration
func NewRedisClient(cfg *config.Config) *redis.Client {
	options := &redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	}
	if cfg.RedisTLS {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(options)
}

// NewRevocationStore creates a revocation store on top of an existing client
func NewRevocationStore(client *redis.Client, prefix string) *RevocationStore {
	if prefix == "" {
		prefix = "bistro:revoked:"
	}
	return &RevocationStore{client: client, prefix: prefix}
}

func (s *RevocationStore) key(tokenID string) string {
	return s.prefix + tokenID
}

// Revoke marks a token id as revoked for ttl. A non-positive ttl means the token is
// already expired and nothing is stored.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, s.key(tokenID), 1, ttl).Err()
}

// IsRevoked reports whether the token id was revoked and has not yet been evicted
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping checks connectivity for the health endpoint
func (s *RevocationStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool
func (s *RevocationStore) Close() error {
	return s.client.Close()
}

var _ repository.RevocationStore = (*RevocationStore)(nil)
