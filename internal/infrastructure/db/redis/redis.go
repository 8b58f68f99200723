// Package redis keeps visitors' credentials in Redis so every replica of the
// web service sees the same logins.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultKeyPrefix   = "critique"
	clientName         = "critique-web"
)

// Config describes the Redis database holding credentials.
type Config struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces keys so deployments can share a database.
	KeyPrefix string
	// TTL expires a visitor's credentials this long after the last login.
	TTL         time.Duration
	DialTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.KeyPrefix == "" {
		c.KeyPrefix = defaultKeyPrefix
	}
	if c.TTL <= 0 {
		c.TTL = defaultCredentialTTL
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
	return c
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ClientName:   clientName,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.DialTimeout,
		WriteTimeout: c.DialTimeout,
	}
}

// Open connects to Redis and returns a credential store on it. The server
// must answer a ping within the dial timeout.
func Open(ctx context.Context, cfg Config, sealer TokenSealer) (*CredentialStore, error) {
	cfg = cfg.withDefaults()
	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return newCredentialStore(client, sealer, cfg), nil
}
