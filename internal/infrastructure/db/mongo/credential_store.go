package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodcritique/critique-web/internal/core/ports"
)

// TokenSealer encrypts tokens before they reach MongoDB.
type TokenSealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// CredentialStore keeps one document per visitor, keyed by visitor id.
type CredentialStore struct {
	coll   *mongo.Collection
	sealer TokenSealer
}

func newCredentialStore(coll *mongo.Collection, sealer TokenSealer) *CredentialStore {
	return &CredentialStore{coll: coll, sealer: sealer}
}

// credentialDoc is the stored shape. UpdatedAt must stay a BSON date for the
// TTL index to expire it.
type credentialDoc struct {
	VisitorID string    `bson:"_id"`
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *CredentialStore) ensureTTLIndex(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetName("credentials_ttl").SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("create credential ttl index: %w", err)
	}
	return nil
}

func (s *CredentialStore) Load(ctx context.Context, visitorID string) (ports.Credentials, error) {
	var doc credentialDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": visitorID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ports.Credentials{}, nil
	}
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	token, err := s.sealer.Open(doc.Token)
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	return ports.Credentials{Token: token, UserID: doc.UserID}, nil
}

func (s *CredentialStore) Save(ctx context.Context, visitorID string, c ports.Credentials) error {
	sealed, err := s.sealer.Seal(c.Token)
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	doc := credentialDoc{VisitorID: visitorID, Token: sealed, UserID: c.UserID, UpdatedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": visitorID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context, visitorID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": visitorID}); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Ping reports whether the backing database answers.
func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

// Close disconnects the client.
func (s *CredentialStore) Close(ctx context.Context) error {
	return s.coll.Database().Client().Disconnect(ctx)
}
