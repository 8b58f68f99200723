// Package mongo keeps visitors' credentials in MongoDB, one document per
// visitor, expired by a TTL index.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultCollection = "visitor_credentials"
	appName           = "critique-web"
)

// Config describes the database holding credentials.
type Config struct {
	URI        string
	Database   string
	Collection string
	// TTL expires a visitor's credentials this long after the last login.
	TTL     time.Duration
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Collection == "" {
		c.Collection = defaultCollection
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// clientOptions favours durability: a login that was acknowledged must
// survive a primary failover.
func (c Config) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetAppName(appName).
		SetWriteConcern(writeconcern.Majority()).
		SetServerSelectionTimeout(c.Timeout)
}

// Open connects, verifies the server answers, creates the TTL index and
// returns the store. Close disconnects it.
func Open(ctx context.Context, cfg Config, sealer TokenSealer) (*CredentialStore, error) {
	cfg = cfg.withDefaults()
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := newCredentialStore(client.Database(cfg.Database).Collection(cfg.Collection), sealer)
	if err := s.ensureTTLIndex(connectCtx, cfg.TTL); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}
	return s, nil
}
