// Package redis holds the process-wide client shared by the durable
// session tier and the sign-in rate limiter.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

var ErrNotConfigured = errors.New("redis: REDIS_URL not configured")

type Config struct {
	URL      string // redis://host:port/db, or rediss:// for TLS
	Password string // overrides the password in URL when set
}

// Client returns the shared client, or nil when Initialize failed or was
// never called.
func Client() *redis.Client {
	return client
}

// Initialize connects the shared client. Only the first call does any
// work; later calls return the first result.
func Initialize(cfg Config) error {
	clientOnce.Do(func() {
		client, clientErr = connect(cfg)
	})
	return clientErr
}

func connect(cfg Config) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if opts.TLSConfig != nil {
		opts.TLSConfig.MinVersion = tls.VersionTLS12
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2

	c := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: connection failed: %w", err)
	}
	return c, nil
}

func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck pings the shared client; it backs the "redis" entry of
// /v1/health.
func HealthCheck(ctx context.Context) error {
	if client == nil {
		return ErrNotConfigured
	}
	return client.Ping(ctx).Err()
}
