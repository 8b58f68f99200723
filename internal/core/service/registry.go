package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/api/metrics"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

const DefaultSessionIdleTTL = 30 * time.Minute

// bootstrapTimeout bounds a session's first user fetch, which runs detached
// from the request that triggered it.
const bootstrapTimeout = 10 * time.Second

// RegistryConfig configures how the registry builds sessions.
type RegistryConfig struct {
	Store           ports.CredentialStore
	NewRemote       ports.RemoteFactory
	StalePolicy     StaleCredentialPolicy
	NotificationTTL time.Duration
	IdleTTL         time.Duration
}

// Registry keeps one Session per visitor. Each session gets its own API
// client so credentials never leak between visitors. Dropping an idle
// session loses nothing: the credential pair stays in the store and the next
// request bootstraps a fresh session from it.
type Registry struct {
	cfg    RegistryConfig
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(cfg RegistryConfig, logger zerolog.Logger) *Registry {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultSessionIdleTTL
	}
	return &Registry{cfg: cfg, logger: logger, sessions: make(map[string]*Session)}
}

// Session returns the bootstrapped session of visitorID, creating it on
// first use.
func (r *Registry) Session(ctx context.Context, visitorID string) *Session {
	r.mu.Lock()
	s, ok := r.sessions[visitorID]
	if !ok {
		s = NewSession(SessionConfig{
			VisitorID:   visitorID,
			Store:       r.cfg.Store,
			Remote:      r.cfg.NewRemote(),
			Notes:       NewNotifications(r.cfg.NotificationTTL),
			StalePolicy: r.cfg.StalePolicy,
			Log:         r.logger,
		})
		r.sessions[visitorID] = s
		metrics.SessionsActive.Set(float64(len(r.sessions)))
	}
	r.mu.Unlock()

	s.Touch()
	// An aborted page load must not decide the visitor's login.
	bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bootstrapTimeout)
	defer cancel()
	s.Bootstrap(bctx)
	return s
}

// Len returns the number of sessions held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle since before now minus the idle TTL and returns
// how many it dropped.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.cfg.IdleTTL)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.IdleSince().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		metrics.SessionsActive.Set(float64(len(r.sessions)))
		r.logger.Debug().Int("dropped", n).Int("remaining", len(r.sessions)).Msg("idle sessions swept")
	}
	return n
}

// Run sweeps idle sessions until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	interval := r.cfg.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}
