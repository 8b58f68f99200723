package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodcritique/critique-web/internal/api/handler"
	"github.com/foodcritique/critique-web/internal/core/domain"
	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/core/service"
	"github.com/foodcritique/critique-web/internal/infrastructure/apiclient"
	"github.com/foodcritique/critique-web/internal/infrastructure/remote"
	"github.com/foodcritique/critique-web/internal/infrastructure/store"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

// stubSessions hands out sessions that never reach the network unless
// credentials were stored for the visitor.
type stubSessions struct {
	store    *store.MemoryStore
	apiURL   string
	sessions map[string]*service.Session
}

func newStubSessions(apiURL string) *stubSessions {
	return &stubSessions{store: store.NewMemoryStore(), apiURL: apiURL, sessions: map[string]*service.Session{}}
}

func (s *stubSessions) Session(ctx context.Context, visitorID string) *service.Session {
	if sess, ok := s.sessions[visitorID]; ok {
		return sess
	}
	client := apiclient.New(apiclient.Config{BaseURL: s.apiURL, Timeout: time.Second}, zerolog.Nop())
	sess := service.NewSession(service.SessionConfig{
		VisitorID: visitorID,
		Store:     s.store,
		Remote:    remote.New(client),
		Log:       zerolog.Nop(),
	})
	sess.Bootstrap(ctx)
	s.sessions[visitorID] = sess
	return sess
}

type stubTokens struct {
	issued int
	err    error
}

func (s *stubTokens) Issue() (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	s.issued++
	return "visitor-new", "signed-new", nil
}

func (s *stubTokens) Parse(token string) (string, error) {
	if token == "signed-known" {
		return "visitor-known", nil
	}
	return "", service.ErrInvalidVisitorToken
}

func runVisitor(t *testing.T, tokens VisitorTokens, sessions Sessions, cookie string) (echo.Context, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: VisitorCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := Visitor(tokens, sessions, true, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})(c)
	return c, rec, err
}

func TestVisitor_IssuesCookie(t *testing.T) {
	tokens := &stubTokens{}
	c, rec, err := runVisitor(t, tokens, newStubSessions("http://127.0.0.1:1"), "")
	if err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if tokens.issued != 1 {
		t.Fatalf("expected a token to be issued")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "signed-new" || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
	if c.Get("visitor_id") != "visitor-new" {
		t.Fatalf("unexpected visitor id %v", c.Get("visitor_id"))
	}
	if _, ok := c.Get(handler.SessionKey).(*service.Session); !ok {
		t.Fatalf("expected the session in the context")
	}
}

func TestVisitor_ReusesValidCookie(t *testing.T) {
	tokens := &stubTokens{}
	c, rec, err := runVisitor(t, tokens, newStubSessions("http://127.0.0.1:1"), "signed-known")
	if err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if tokens.issued != 0 || len(rec.Result().Cookies()) != 0 {
		t.Fatalf("a valid cookie must not be replaced")
	}
	if c.Get("visitor_id") != "visitor-known" {
		t.Fatalf("unexpected visitor id %v", c.Get("visitor_id"))
	}
}

func TestVisitor_ReplacesForgedCookie(t *testing.T) {
	tokens := &stubTokens{}
	c, _, err := runVisitor(t, tokens, newStubSessions("http://127.0.0.1:1"), "forged")
	if err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if tokens.issued != 1 || c.Get("visitor_id") != "visitor-new" {
		t.Fatalf("a forged cookie must yield a fresh visitor")
	}
}

func TestVisitor_IssueFailure(t *testing.T) {
	_, _, err := runVisitor(t, &stubTokens{err: errors.New("entropy")}, newStubSessions("http://127.0.0.1:1"), "")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestAuth(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"a1","name":"Ada","role":"ADMIN"}`))
	}))
	defer api.Close()
	sessions := newStubSessions(api.URL)
	_ = sessions.store.Save(context.Background(), "admin", ports.Credentials{Token: "T", UserID: "a1"})

	cases := []struct {
		name    string
		visitor string
		want    int
	}{
		{"anonymous", "anon", http.StatusUnauthorized},
		{"logged in", "admin", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users", nil), rec)
			c.Set(handler.SessionKey, sessions.Session(context.Background(), tc.visitor))

			_ = Auth()(func(c echo.Context) error {
				if c.Get("role") != string(domain.RoleAdmin) || c.Get("user_id") != "a1" {
					t.Fatalf("unexpected context role=%v user=%v", c.Get("role"), c.Get("user_id"))
				}
				return c.NoContent(http.StatusOK)
			})(c)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestAuth_NoSession(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_ = Auth()(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
