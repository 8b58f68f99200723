package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodcritique/critique-web/internal/core/ports"
)

const defaultCredentialTTL = 30 * 24 * time.Hour

// TokenSealer encrypts tokens before they reach Redis.
type TokenSealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// CredentialStore keeps each visitor's token and user id in a Redis hash.
// Key format: <prefix>:credentials:<visitor_id>, fields token and user_id.
type CredentialStore struct {
	client *redis.Client
	sealer TokenSealer
	prefix string
	ttl    time.Duration
}

func newCredentialStore(client *redis.Client, sealer TokenSealer, cfg Config) *CredentialStore {
	cfg = cfg.withDefaults()
	return &CredentialStore{client: client, sealer: sealer, prefix: cfg.KeyPrefix, ttl: cfg.TTL}
}

func (s *CredentialStore) Load(ctx context.Context, visitorID string) (ports.Credentials, error) {
	vals, err := s.client.HGetAll(ctx, s.key(visitorID)).Result()
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	token, err := s.sealer.Open(vals["token"])
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	return ports.Credentials{Token: token, UserID: vals["user_id"]}, nil
}

func (s *CredentialStore) Save(ctx context.Context, visitorID string, c ports.Credentials) error {
	sealed, err := s.sealer.Seal(c.Token)
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	key := s.key(visitorID)
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, "token", sealed, "user_id", c.UserID)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, s.key(visitorID)).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) key(visitorID string) string {
	return s.prefix + ":credentials:" + visitorID
}

// Ping reports whether the backing server answers.
func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (s *CredentialStore) Close() error {
	return s.client.Close()
}
