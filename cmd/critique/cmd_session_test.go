package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foodcritique/critique-web/internal/api/handler"
	"github.com/foodcritique/critique-web/internal/core/ports"
	"github.com/foodcritique/critique-web/internal/infrastructure/store"
)

const joJSON = `{"_id":"u1","name":"Jo Lee","email":"jo@x.io","role":"USER","status":"ACTIVE"}`

// newFakeAPI serves the login and user endpoints for a single account.
func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "jo@x.io" || body.Password != "Secret1!" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-1","user":` + joJSON + `}`))
	})
	mux.HandleFunc("GET /user/u1", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"jwt malformed"}`))
			return
		}
		_, _ = w.Write([]byte(joJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// cliEnv points the CLI at api and a fresh credentials file, returning the
// file's path.
func cliEnv(t *testing.T, api *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	t.Setenv("ENV", "development")
	t.Setenv("API_BASE_URL", api.URL)
	t.Setenv("CLI_CREDENTIALS_FILE", path)
	t.Setenv("LOG_LEVEL", "error")
	return path
}

// runCLI executes one command line under profile and returns its stdout.
func runCLI(t *testing.T, profile string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--profile", profile}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSignupForm_Validation(t *testing.T) {
	valid := signupForm{Name: "Jo Lee", Email: "jo@x.io", Password: "Secret1!", Role: "OWNER"}
	tests := map[string]func(f *signupForm){
		"missing name":     func(f *signupForm) { f.Name = "" },
		"bad email":        func(f *signupForm) { f.Email = "jo" },
		"no upper case":    func(f *signupForm) { f.Password = "secret1!" },
		"no special char":  func(f *signupForm) { f.Password = "Secret12" },
		"too short":        func(f *signupForm) { f.Password = "Se1!" },
		"admin self-grant": func(f *signupForm) { f.Role = "ADMIN" },
	}

	v := handler.NewValidator()
	ok := valid
	if err := v.Validate(&ok); err != nil {
		t.Fatalf("expected a valid form, got %v", err)
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			f := valid
			mutate(&f)
			if err := v.Validate(&f); err == nil {
				t.Fatalf("expected a validation error")
			}
		})
	}
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	path := cliEnv(t, newFakeAPI(t))
	creds := store.NewFileStore(path)
	ctx := context.Background()

	out, err := runCLI(t, "home", "login", "--email", "jo@x.io", "--password", "Secret1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in as Jo Lee (USER)") {
		t.Fatalf("unexpected login output %q", out)
	}
	if got, _ := creds.Load(ctx, "home"); got != (ports.Credentials{Token: "tok-1", UserID: "u1"}) {
		t.Fatalf("expected credentials saved under the profile, got %+v", got)
	}

	out, err = runCLI(t, "home", "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "Jo Lee [JL]") || !strings.Contains(out, "Profile:  home") {
		t.Fatalf("unexpected whoami output %q", out)
	}

	if _, err := runCLI(t, "home", "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if got, _ := creds.Load(ctx, "home"); got != (ports.Credentials{}) {
		t.Fatalf("expected credentials cleared, got %+v", got)
	}

	if _, err := runCLI(t, "home", "whoami"); err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("expected whoami to require a login, got %v", err)
	}
}

func TestLogin_RejectedKeepsProfileEmpty(t *testing.T) {
	path := cliEnv(t, newFakeAPI(t))

	_, err := runCLI(t, "work", "login", "--email", "jo@x.io", "--password", "wrong")
	if err == nil || !strings.Contains(err.Error(), "Invalid credentials") {
		t.Fatalf("expected the server's message, got %v", err)
	}
	if got, _ := store.NewFileStore(path).Load(context.Background(), "work"); got != (ports.Credentials{}) {
		t.Fatalf("expected nothing saved, got %+v", got)
	}
}

func TestProfilesAreIndependent(t *testing.T) {
	path := cliEnv(t, newFakeAPI(t))

	if _, err := runCLI(t, "a", "login", "--email", "jo@x.io", "--password", "Secret1!"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := runCLI(t, "b", "whoami"); err == nil {
		t.Fatalf("profile b must not see profile a's login")
	}
	if got, _ := store.NewFileStore(path).Load(context.Background(), "a"); !got.Complete() {
		t.Fatalf("profile a lost its credentials: %+v", got)
	}
}
