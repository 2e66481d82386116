package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/hmlee/threadline-backend/config"
	"github.com/hmlee/threadline-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "revoked_token:"

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// Close closes the Redis connection
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Client returns the Redis client instance
func Client() *redis.Client {
	return client
}

// TokenStore tracks revoked JWT IDs until their natural expiry.
// Logout writes here; the auth middleware reads.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore backed by the given Redis client
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke marks a token ID as revoked for the remaining token lifetime
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to track
		return nil
	}
	return s.client.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked reports whether a token ID has been revoked
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
