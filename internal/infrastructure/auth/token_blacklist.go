package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/markethub/backend/internal/infrastructure/config"
)

// TokenBlacklist invalidates JWT tokens before they expire (logout)
type TokenBlacklist interface {
	// Add blacklists a token's JTI; ttl should be the remaining time
	// until the token expires.
	Add(ctx context.Context, jti string, ttl time.Duration) error

	// IsBlacklisted checks if a token's JTI has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklist creates a Redis-backed token blacklist and
// verifies connectivity before returning.
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for token blacklist: %w", err)
	}

	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "token:blacklist:",
	}, nil
}

func (b *RedisTokenBlacklist) key(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

// Add blacklists a token's JTI with the given TTL
func (b *RedisTokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

// IsBlacklisted checks if a token's JTI is in the blacklist
func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// Close closes the Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist is a single-process fallback used when Redis
// is not configured, and in tests.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	expires map[string]time.Time // JTI -> expiration time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{expires: make(map[string]time.Time)}
}

// Add blacklists a token's JTI until its expiration
func (b *InMemoryTokenBlacklist) Add(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expires[jti] = time.Now().Add(ttl)
	return nil
}

// IsBlacklisted checks if a token's JTI is blacklisted and not expired
func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiration, exists := b.expires[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiration) {
		delete(b.expires, jti)
		return false, nil
	}
	return true, nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
