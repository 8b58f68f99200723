package ports

import "context"

// Credentials is the pair persisted between visits: the bearer token and the
// id of the user it belongs to. Either may be empty.
type Credentials struct {
	Token  string `yaml:"token"`
	UserID string `yaml:"user_id"`
}

// Complete reports whether both values are present.
func (c Credentials) Complete() bool {
	return c.Token != "" && c.UserID != ""
}

// CredentialStore is the client-local storage of one visitor. Implementations
// are keyed by the visitor id; the CLI uses a single fixed key.
type CredentialStore interface {
	// Load returns the stored pair. A visitor with nothing stored yields a
	// zero Credentials and a nil error.
	Load(ctx context.Context, visitorID string) (Credentials, error)
	Save(ctx context.Context, visitorID string, c Credentials) error
	// Clear removes both values. Clearing an empty store is not an error.
	Clear(ctx context.Context, visitorID string) error
}
