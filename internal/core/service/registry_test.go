package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/infrastructure/store"
)

func newTestRegistry(t *testing.T, ttl time.Duration) (*Registry, *int) {
	t.Helper()
	built := 0
	r := NewRegistry(RegistryConfig{
		Store: store.NewMemoryStore(),
		NewRemote: func() *ports.Remote {
			built++
			return &ports.Remote{
				Client:      &stubClient{},
				Auth:        &stubAuth{},
				Users:       &stubUsers{},
				Restaurants: &stubRestaurants{},
				Reviews:     &stubReviews{},
			}
		},
		IdleTTL: ttl,
	}, zerolog.Nop())
	return r, &built
}

func TestRegistry_OneSessionPerVisitor(t *testing.T) {
	r, built := newTestRegistry(t, time.Minute)
	ctx := context.Background()

	a := r.Session(ctx, "a")
	if a != r.Session(ctx, "a") {
		t.Fatalf("expected the same session for the same visitor")
	}
	b := r.Session(ctx, "b")
	if a == b {
		t.Fatalf("visitors must not share a session")
	}
	if a.Remote().Client == b.Remote().Client {
		t.Fatalf("visitors must not share an API client")
	}
	if *built != 2 || r.Len() != 2 {
		t.Fatalf("expected 2 sessions, built=%d len=%d", *built, r.Len())
	}
	if st := a.State(); st != StateUnauthenticated {
		t.Fatalf("expected bootstrapped session, got %s", st)
	}
}

func TestRegistry_Sweep(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute)
	ctx := context.Background()
	r.Session(ctx, "old")
	fresh := r.Session(ctx, "fresh")

	// Pretend "fresh" was touched long after "old".
	fresh.mu.Lock()
	fresh.lastSeen = time.Now().Add(2 * time.Minute)
	fresh.mu.Unlock()

	dropped := r.Sweep(time.Now().Add(90 * time.Second))
	if dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", dropped)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 remaining, got %d", r.Len())
	}
	if r.Session(ctx, "fresh") != fresh {
		t.Fatalf("fresh session should have survived")
	}
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestRegistry_BootstrapOutlivesAbortedRequest(t *testing.T) {
	creds := store.NewMemoryStore()
	_ = creds.Save(context.Background(), "v", ports.Credentials{Token: "tok", UserID: jo.ID})
	users := &stubUsers{getFn: func(ctx context.Context, _ string) (*domain.User, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		u := jo
		return &u, nil
	}}
	r := NewRegistry(RegistryConfig{
		Store: creds,
		NewRemote: func() *ports.Remote {
			return &ports.Remote{
				Client:      &stubClient{},
				Auth:        &stubAuth{},
				Users:       users,
				Restaurants: &stubRestaurants{},
				Reviews:     &stubReviews{},
			}
		},
		StalePolicy: ClearStaleCredentials,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := r.Session(ctx, "v")
	if st := s.State(); st != StateAuthenticated {
		t.Fatalf("expected the stored login to be restored, got %s", st)
	}
	if c, _ := creds.Load(context.Background(), "v"); !c.Complete() {
		t.Fatalf("credentials must not be cleared, got %+v", c)
	}
}
