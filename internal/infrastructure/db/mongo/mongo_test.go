package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestConfig_ClientOptions(t *testing.T) {
	cfg := Config{URI: "mongodb://db:27017", Database: "critique"}.withDefaults()
	if cfg.Collection != "visitor_credentials" || cfg.Timeout != defaultTimeout {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	opts := cfg.clientOptions()
	if opts.AppName == nil || *opts.AppName != appName {
		t.Fatalf("expected app name %q, got %v", appName, opts.AppName)
	}
	if opts.WriteConcern == nil || opts.WriteConcern.W != "majority" {
		t.Fatalf("expected majority writes, got %+v", opts.WriteConcern)
	}
	if opts.ServerSelectionTimeout == nil || *opts.ServerSelectionTimeout != defaultTimeout {
		t.Fatalf("unexpected selection timeout %v", opts.ServerSelectionTimeout)
	}
}

func TestCredentialDoc_UpdatedAtIsDate(t *testing.T) {
	raw, err := bson.Marshal(credentialDoc{VisitorID: "v", UpdatedAt: time.Unix(1700000000, 0)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if typ := bson.Raw(raw).Lookup("updated_at").Type; typ != bson.TypeDateTime {
		t.Fatalf("ttl field must be a date, got %s", typ)
	}
}
