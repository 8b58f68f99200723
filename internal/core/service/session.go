package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/api/metrics"
	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
)

// LandingRoute is where a visitor is sent after logging out.
const LandingRoute = "/"

// State is the position of a Session in its lifecycle.
type State string

const (
	StateInitializing    State = "initializing"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// StaleCredentialPolicy decides what bootstrap does with stored credentials
// when fetching the user fails for a reason other than a 401.
type StaleCredentialPolicy string

const (
	// KeepStaleCredentials leaves the pair in storage. The session stays
	// logged out, but the next session built for the visitor (a new CLI run,
	// or a web visitor whose idle session was swept) retries the pair.
	KeepStaleCredentials StaleCredentialPolicy = "keep"
	// ClearStaleCredentials performs a full logout on any bootstrap failure.
	ClearStaleCredentials StaleCredentialPolicy = "clear"
)

// ParseStaleCredentialPolicy maps a config value to a policy, defaulting to
// KeepStaleCredentials.
func ParseStaleCredentialPolicy(s string) StaleCredentialPolicy {
	if StaleCredentialPolicy(s) == ClearStaleCredentials {
		return ClearStaleCredentials
	}
	return KeepStaleCredentials
}

const storeTimeout = 5 * time.Second

// ErrSessionChanged is returned when a result arrives after the session it
// was requested for logged in or out. The result is discarded.
var ErrSessionChanged = errors.New("session changed while request was in flight")

// SessionConfig wires a Session to its collaborators.
type SessionConfig struct {
	VisitorID   string
	Store       ports.CredentialStore
	Remote      *ports.Remote
	Notes       *Notifications
	StalePolicy StaleCredentialPolicy
	Log         zerolog.Logger
}

// Session is the authenticated-user context of one visitor. It runs the
// bootstrap/login/sign-up/logout state machine, owns the visitor's API client
// credential, and holds the page collections that are discarded on logout.
type Session struct {
	visitorID string
	store     ports.CredentialStore
	remote    *ports.Remote
	notes     *Notifications
	policy    StaleCredentialPolicy
	log       zerolog.Logger

	// ops serializes bootstrap, login, sign-up and manual logout. The 401
	// path does not take it because it runs inside calls made under it.
	ops sync.Mutex

	mu       sync.RWMutex
	state    State
	user     *domain.User
	epoch    uint64
	lastSeen time.Time

	restaurants *Collection[domain.Restaurant]
	reviews     *Collection[domain.Review]
	users       *Collection[domain.User]

	// restaurantFilter is the last filter the restaurants page was fetched
	// with; refetches after a create reuse it.
	restaurantFilter domain.RestaurantFilter
	// reviewFilter plays the same role for the admin reviews page.
	reviewFilter domain.ReviewFilter
	// detail is the restaurant last opened on the detail page.
	detail *domain.Restaurant
}

// NewSession returns a Session in StateInitializing and registers the 401
// hook on its API client.
func NewSession(cfg SessionConfig) *Session {
	notes := cfg.Notes
	if notes == nil {
		notes = NewNotifications(0)
	}
	s := &Session{
		visitorID: cfg.VisitorID,
		store:     cfg.Store,
		remote:    cfg.Remote,
		notes:     notes,
		policy:    cfg.StalePolicy,
		log:       cfg.Log.With().Str("visitor", cfg.VisitorID).Logger(),
		state:     StateInitializing,
		lastSeen:  time.Now(),
	}
	s.resetCollections()
	cfg.Remote.Client.OnUnauthorized(s.handleUnauthorized)
	return s
}

// SessionContext is the snapshot handed to views: who is logged in, if
// anyone.
type SessionContext struct {
	State State        `json:"state"`
	User  *domain.User `json:"user"`
}

// Role returns the current user's role, or "" when logged out.
func (c SessionContext) Role() domain.Role {
	if c.User == nil {
		return ""
	}
	return c.User.Role
}

// Context returns a copy of the current session context.
func (s *Session) Context() SessionContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx := SessionContext{State: s.state}
	if s.user != nil {
		u := *s.user
		ctx.User = &u
	}
	return ctx
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// VisitorID returns the id of the visitor this session belongs to.
func (s *Session) VisitorID() string { return s.visitorID }

// Notifications returns the session's transient message queue.
func (s *Session) Notifications() *Notifications { return s.notes }

// Remote returns the repositories bound to this session's API client.
func (s *Session) Remote() *ports.Remote { return s.remote }

// RequireUser returns the logged-in user or domain.ErrNotAuthenticated.
func (s *Session) RequireUser() (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.user == nil {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	return *s.user, nil
}

// Touch records activity for idle expiry.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// IdleSince returns the time of the last recorded activity.
func (s *Session) IdleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// Epoch identifies the current login. It changes on every login and logout
// so late results can be recognised and dropped.
func (s *Session) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Current reports whether epoch is still the session's login.
func (s *Session) Current(epoch uint64) bool {
	return s.Epoch() == epoch
}

// Fail surfaces err as a notification and returns it unchanged. Context
// cancellation and discarded results are not shown to anyone.
func (s *Session) Fail(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrSessionChanged) {
		return err
	}
	s.notes.Notify(domain.Message(err))
	return err
}

// Bootstrap resolves StateInitializing into StateAuthenticated or
// StateUnauthenticated. Once resolved, later calls return the current state
// without touching the network. A bootstrap cut short by ctx resolves nothing
// and leaves the session in StateInitializing for the next call to retry.
func (s *Session) Bootstrap(ctx context.Context) State {
	s.ops.Lock()
	defer s.ops.Unlock()

	if st := s.State(); st != StateInitializing {
		return st
	}

	creds, err := s.store.Load(ctx, s.visitorID)
	if err != nil {
		if ctx.Err() != nil {
			return StateInitializing
		}
		s.log.Warn().Err(err).Msg("credential store unreadable, starting logged out")
		creds = ports.Credentials{}
	}
	if !creds.Complete() {
		s.transition(StateUnauthenticated, nil, "bootstrap")
		return StateUnauthenticated
	}

	s.remote.Client.SetToken(creds.Token)
	user, err := s.remote.Users.Get(ctx, creds.UserID)
	if err != nil {
		if ctx.Err() != nil {
			s.remote.Client.SetToken("")
			s.log.Debug().Err(err).Msg("bootstrap abandoned by caller, will retry")
			return StateInitializing
		}
		s.Fail(err)
		if s.policy == ClearStaleCredentials {
			s.logout(ctx, "bootstrap")
		} else {
			s.transition(StateUnauthenticated, nil, "bootstrap")
		}
		s.log.Info().Err(err).Str("policy", string(s.policy)).Msg("stored credentials rejected at bootstrap")
		return StateUnauthenticated
	}

	s.transition(StateAuthenticated, user, "bootstrap")
	return StateAuthenticated
}

// Login authenticates with email and password. On failure the state stays
// unauthenticated and the server's message (or the fallback) is surfaced.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.ops.Lock()
	defer s.ops.Unlock()
	return s.login(ctx, email, password, "login")
}

func (s *Session) login(ctx context.Context, email, password, cause string) error {
	if st := s.State(); st != StateUnauthenticated {
		return fmt.Errorf("login from %s: %w", st, domain.ErrInvalidTransition)
	}

	res, err := s.remote.Auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredentials) {
			s.notes.Notify(domain.FallbackErrorMessage)
			return err
		}
		return s.Fail(err)
	}

	if err := s.store.Save(ctx, s.visitorID, ports.Credentials{Token: res.Token, UserID: res.User.ID}); err != nil {
		return s.Fail(fmt.Errorf("persist credentials: %w", err))
	}
	s.remote.Client.SetToken(res.Token)
	user := res.User
	s.transition(StateAuthenticated, &user, cause)
	s.log.Info().Str("user", user.ID).Str("role", string(user.Role)).Msg("logged in")
	return nil
}

// SignUp registers a new account and, on success, logs in with the same
// email and password.
func (s *Session) SignUp(ctx context.Context, in ports.SignUpInput) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	if st := s.State(); st != StateUnauthenticated {
		return fmt.Errorf("sign up from %s: %w", st, domain.ErrInvalidTransition)
	}
	if !in.Role.SelfAssignable() {
		return s.Fail(domain.ErrInvalidRole)
	}
	if _, err := s.remote.Auth.SignUp(ctx, in); err != nil {
		return s.Fail(err)
	}
	return s.login(ctx, in.Email, in.Password, "signup")
}

// Logout clears stored credentials, drops the API credential and the session
// context, and returns the route to redirect to. Calling it when already
// logged out is a no-op with the same end state.
func (s *Session) Logout(ctx context.Context) string {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.logout(ctx, "logout")
	return LandingRoute
}

// handleUnauthorized is the API client's 401 hook.
func (s *Session) handleUnauthorized() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	s.logout(ctx, "unauthorized")
}

func (s *Session) logout(ctx context.Context, cause string) {
	if err := s.store.Clear(ctx, s.visitorID); err != nil {
		s.log.Error().Err(err).Msg("failed to clear stored credentials")
	}
	s.remote.Client.SetToken("")
	s.transition(StateUnauthenticated, nil, cause)
}

func (s *Session) transition(to State, user *domain.User, cause string) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.user = user
	if from != to || to == StateAuthenticated {
		s.epoch++
	}
	if to != StateAuthenticated {
		s.resetCollectionsLocked()
	}
	s.mu.Unlock()

	if from != to {
		metrics.SessionTransitionsTotal.WithLabelValues(string(to), cause).Inc()
		s.log.Debug().Str("from", string(from)).Str("to", string(to)).Str("cause", cause).Msg("session transition")
	}
}

func (s *Session) resetCollections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetCollectionsLocked()
}

func (s *Session) resetCollectionsLocked() {
	s.restaurants = NewCollection(func(r domain.Restaurant) bool { return r.Status.IsActive() })
	s.reviews = NewCollection[domain.Review](nil)
	s.users = NewCollection[domain.User](nil)
	s.restaurantFilter = domain.RestaurantFilter{Rating: domain.RatingAny}
	s.reviewFilter = domain.ReviewFilter{}
	s.detail = nil
}

// collections returns the current page collections under the read lock.
func (s *Session) collections() (*Collection[domain.Restaurant], *Collection[domain.Review], *Collection[domain.User]) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restaurants, s.reviews, s.users
}

// begin returns the current user and login epoch for a page operation.
func (s *Session) begin() (domain.User, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.user == nil {
		return domain.User{}, 0, domain.ErrNotAuthenticated
	}
	return *s.user, s.epoch, nil
}

// settle reports whether a result fetched under epoch may still be applied.
func (s *Session) settle(ctx context.Context, epoch uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.Current(epoch) {
		return ErrSessionChanged
	}
	return nil
}
