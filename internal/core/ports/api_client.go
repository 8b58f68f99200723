package ports

import "context"

// APIClient is the credential-carrying transport every remote call funnels
// through. Callers never set the Authorization header themselves.
type APIClient interface {
	// SetToken reconfigures the bearer credential. An empty token removes it.
	SetToken(token string)
	Token() string
	// OnUnauthorized registers the hook run when any response is a 401. The
	// failing call still returns its error after the hook ran.
	OnUnauthorized(fn func())

	Get(ctx context.Context, path string, query map[string]string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
}
