package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/infrastructure/store"
)

// ---------------------------------------------------------------------------
// Stub API client and repositories
// ---------------------------------------------------------------------------

type stubClient struct {
	mu     sync.Mutex
	token  string
	hook   func()
	tokens []string // every value passed to SetToken
}

func (c *stubClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokens = append(c.tokens, token)
}

func (c *stubClient) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *stubClient) OnUnauthorized(fn func()) { c.hook = fn }

// unauthorized runs the 401 hook the way the real client does and returns
// the error the failing call reports.
func (c *stubClient) unauthorized() error {
	if c.hook != nil {
		c.hook()
	}
	return domain.NewRemoteError(http.StatusUnauthorized, "jwt expired")
}

func (c *stubClient) Get(context.Context, string, map[string]string, any) error {
	return errors.New("stub client does no I/O")
}
func (c *stubClient) Post(context.Context, string, any, any) error {
	return errors.New("stub client does no I/O")
}
func (c *stubClient) Put(context.Context, string, any, any) error {
	return errors.New("stub client does no I/O")
}

type stubAuth struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	signUpFn func(ctx context.Context, in ports.SignUpInput) (*domain.User, error)
	logins   int
	signUps  []ports.SignUpInput
}

func (a *stubAuth) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	a.logins++
	if a.loginFn == nil {
		return nil, domain.NewRemoteError(http.StatusUnauthorized, "Invalid credentials")
	}
	return a.loginFn(ctx, email, password)
}

func (a *stubAuth) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	a.signUps = append(a.signUps, in)
	if a.signUpFn == nil {
		return &domain.User{ID: "new", Name: in.Name, Email: in.Email, Role: in.Role}, nil
	}
	return a.signUpFn(ctx, in)
}

type stubUsers struct {
	listFn   func(ctx context.Context) ([]domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, u domain.User) (*domain.User, error)
	gets     int
	updates  []domain.User
}

func (r *stubUsers) List(ctx context.Context) ([]domain.User, error) {
	if r.listFn == nil {
		return nil, nil
	}
	return r.listFn(ctx)
}

func (r *stubUsers) Get(ctx context.Context, id string) (*domain.User, error) {
	r.gets++
	if r.getFn == nil {
		return nil, domain.NewRemoteError(http.StatusNotFound, "User not found")
	}
	return r.getFn(ctx, id)
}

func (r *stubUsers) Update(ctx context.Context, u domain.User) (*domain.User, error) {
	r.updates = append(r.updates, u)
	if r.updateFn == nil {
		return &u, nil
	}
	return r.updateFn(ctx, u)
}

type stubRestaurants struct {
	listFn   func(ctx context.Context, f domain.RestaurantFilter) ([]domain.Restaurant, error)
	getFn    func(ctx context.Context, id string) (*domain.Restaurant, error)
	createFn func(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
	updateFn func(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
	lists    []domain.RestaurantFilter
	creates  []domain.Restaurant
	updates  []domain.Restaurant
}

func (r *stubRestaurants) List(ctx context.Context, f domain.RestaurantFilter) ([]domain.Restaurant, error) {
	r.lists = append(r.lists, f)
	if r.listFn == nil {
		return nil, nil
	}
	return r.listFn(ctx, f)
}

func (r *stubRestaurants) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	if r.getFn == nil {
		return nil, domain.NewRemoteError(http.StatusNotFound, "Restaurant not found")
	}
	return r.getFn(ctx, id)
}

func (r *stubRestaurants) Create(ctx context.Context, in domain.Restaurant) (*domain.Restaurant, error) {
	r.creates = append(r.creates, in)
	if r.createFn == nil {
		in.ID = "created"
		return &in, nil
	}
	return r.createFn(ctx, in)
}

func (r *stubRestaurants) Update(ctx context.Context, in domain.Restaurant) (*domain.Restaurant, error) {
	r.updates = append(r.updates, in)
	if r.updateFn == nil {
		return &in, nil
	}
	return r.updateFn(ctx, in)
}

type stubReviews struct {
	listFn    func(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error)
	createFn  func(ctx context.Context, r domain.Review) (*domain.Review, error)
	updateFn  func(ctx context.Context, r domain.Review) (*domain.Review, error)
	commentFn func(ctx context.Context, id string, c domain.ReviewComment) (*domain.Review, error)
	lists     int
	creates   []domain.Review
	updates   []domain.Review
	comments  []domain.ReviewComment
}

func (r *stubReviews) List(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	r.lists++
	if r.listFn == nil {
		return nil, nil
	}
	return r.listFn(ctx, f)
}

func (r *stubReviews) Create(ctx context.Context, in domain.Review) (*domain.Review, error) {
	r.creates = append(r.creates, in)
	if r.createFn == nil {
		in.ID = "rev-new"
		return &in, nil
	}
	return r.createFn(ctx, in)
}

func (r *stubReviews) Update(ctx context.Context, in domain.Review) (*domain.Review, error) {
	r.updates = append(r.updates, in)
	if r.updateFn == nil {
		return &in, nil
	}
	return r.updateFn(ctx, in)
}

func (r *stubReviews) AddComment(ctx context.Context, id string, c domain.ReviewComment) (*domain.Review, error) {
	r.comments = append(r.comments, c)
	if r.commentFn == nil {
		return &domain.Review{ID: id, OtherComments: []domain.ReviewComment{c}}, nil
	}
	return r.commentFn(ctx, id, c)
}

// fixture bundles a session with the stubs behind it.
type fixture struct {
	client      *stubClient
	auth        *stubAuth
	users       *stubUsers
	restaurants *stubRestaurants
	reviews     *stubReviews
	store       *store.MemoryStore
	session     *Session
}

const testVisitor = "visitor-1"

func newFixture(t *testing.T, policy StaleCredentialPolicy) *fixture {
	t.Helper()
	f := &fixture{
		client:      &stubClient{},
		auth:        &stubAuth{},
		users:       &stubUsers{},
		restaurants: &stubRestaurants{},
		reviews:     &stubReviews{},
		store:       store.NewMemoryStore(),
	}
	f.session = NewSession(SessionConfig{
		VisitorID:   testVisitor,
		Store:       f.store,
		Remote:      f.remote(),
		StalePolicy: policy,
		Log:         zerolog.Nop(),
	})
	return f
}

func (f *fixture) remote() *ports.Remote {
	return &ports.Remote{
		Client:      f.client,
		Auth:        f.auth,
		Users:       f.users,
		Restaurants: f.restaurants,
		Reviews:     f.reviews,
	}
}

// loggedInAs bootstraps the fixture's session with stored credentials for u.
func (f *fixture) loggedInAs(t *testing.T, u domain.User) *Session {
	t.Helper()
	if err := f.store.Save(context.Background(), testVisitor, ports.Credentials{Token: "tok-" + u.ID, UserID: u.ID}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
	f.users.getFn = func(_ context.Context, id string) (*domain.User, error) {
		if id != u.ID {
			return nil, domain.NewRemoteError(http.StatusNotFound, "User not found")
		}
		clone := u
		return &clone, nil
	}
	if st := f.session.Bootstrap(context.Background()); st != StateAuthenticated {
		t.Fatalf("bootstrap: expected authenticated, got %s", st)
	}
	f.users.gets = 0
	return f.session
}

var (
	jo    = domain.User{ID: "u1", Name: "Jo Lee", Email: "jo@x.io", Role: domain.RoleUser, Status: domain.StatusActive}
	owner = domain.User{ID: "o1", Name: "Olga Owner", Email: "olga@x.io", Role: domain.RoleOwner, Status: domain.StatusActive}
	admin = domain.User{ID: "a1", Name: "Ada", Email: "ada@x.io", Role: domain.RoleAdmin, Status: domain.StatusActive}
)
