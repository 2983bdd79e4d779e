package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"estate/config"
	"estate/internal/domain/lifecycle"
	"estate/internal/domain/service"
	"estate/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// revokedTokenKeyPrefix namespaces revoked token IDs in Redis.
const revokedTokenKeyPrefix = "estate:revoked:jti:"

// NewRedisClient connects to the Redis server named by redis.url and closes the
// connection on shutdown. It returns a nil client when Redis is not configured.
func NewRedisClient(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	if cfg.Redis == nil || cfg.Redis.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse redis url")
	}
	if cfg.Redis.PoolSize > 0 {
		opts.PoolSize = cfg.Redis.PoolSize
	}
	if cfg.Redis.DialTimeout > 0 {
		opts.DialTimeout = cfg.Redis.DialTimeout
	}
	if cfg.Redis.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.Redis.ReadTimeout
	}
	if cfg.Redis.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.Redis.WriteTimeout
	}

	client := redis.NewClient(opts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "redis ping failed")
			}
			logger.Info("Connected to redis", slog.String("addr", opts.Addr))

			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// RevocationListParams holds dependencies for the revocation list, injected by Fx.
type RevocationListParams struct {
	fx.In

	Client *redis.Client `optional:"true"`
	Logger *slog.Logger
}

// NewRevocationList stores revocations in Redis when a client is available, so that
// every instance sees them, and in process memory otherwise.
func NewRevocationList(params RevocationListParams) service.RevocationList {
	if params.Client == nil {
		params.Logger.Warn("Redis not configured, token revocations are kept in process memory")

		return NewMemoryRevocationList()
	}

	return NewRedisRevocationList(params.Client)
}

// redisRevocationList keeps one key per revoked token ID, expiring with the token.
type redisRevocationList struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevocationList constructs a Redis-backed revocation list.
func NewRedisRevocationList(client *redis.Client) service.RevocationList {
	return &redisRevocationList{client: client, now: time.Now}
}

func (r *redisRevocationList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if tokenID == "" || ttl <= 0 {
		return nil
	}

	return errors.Wrap(r.client.Set(ctx, revokedTokenKeyPrefix+tokenID, "1", ttl).Err(), "failed to store revocation")
}

func (r *redisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	err := r.client.Get(ctx, revokedTokenKeyPrefix+tokenID).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, errors.Wrap(err, "failed to read revocation")
	default:
		return true, nil
	}
}

// memoryRevocationList is the single-instance fallback. Expired entries are dropped
// whenever a new token is revoked.
type memoryRevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationList constructs an in-process revocation list.
func NewMemoryRevocationList() service.RevocationList {
	return &memoryRevocationList{entries: make(map[string]time.Time), now: time.Now}
}

func (m *memoryRevocationList) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.entries {
		if !exp.After(now) {
			delete(m.entries, id)
		}
	}
	if tokenID != "" && expiresAt.After(now) {
		m.entries[tokenID] = expiresAt
	}

	return nil
}

func (m *memoryRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.entries[tokenID]

	return ok && exp.After(m.now()), nil
}
