// Package apiclient is the single transport every remote call of a session
// goes through. It owns the bearer credential and the 401 interceptor.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/foodcritique/critique-web/internal/api/metrics"
	"github.com/foodcritique/critique-web/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// Config captures the settings shared by every client instance.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// Client wraps a resty client with a mutable bearer token and a 401 hook.
// The underlying resty client is created once and only reconfigured.
type Client struct {
	http *resty.Client
	log  zerolog.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()

	inflight singleflight.Group
}

// New returns a Client with no credential.
func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Transport != nil {
		rc.SetTransport(cfg.Transport)
	}

	c := &Client{http: rc, log: log}
	rc.OnBeforeRequest(c.attachToken)
	rc.OnAfterResponse(c.intercept)
	return c
}

// SetToken swaps the bearer credential used by all subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer credential, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnUnauthorized registers the hook run for every 401 response.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) attachToken(_ *resty.Client, r *resty.Request) error {
	if t := c.Token(); t != "" {
		r.SetAuthToken(t)
	}
	return nil
}

func (c *Client) intercept(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}
	c.mu.RLock()
	hook := c.onUnauthorized
	current := c.token
	c.mu.RUnlock()

	// A request sent with a credential that has since been replaced says
	// nothing about the current login.
	if resp.Request.Token != current {
		c.log.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Msg("401 for a replaced credential, session kept")
		return nil
	}

	c.log.Warn().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Msg("remote api rejected credential, forcing logout")
	if hook != nil {
		hook()
	}
	return nil
}

// Get issues a GET and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Post issues a POST. Identical concurrent posts share one round trip.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.mutate(ctx, http.MethodPost, path, in, out)
}

// Put issues a PUT. Identical concurrent puts share one round trip.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.mutate(ctx, http.MethodPut, path, in, out)
}

func (c *Client) mutate(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", method, path, err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	// The shared round trip is detached from whichever caller started it and
	// bounded by the client timeout. Each caller waits on its own ctx.
	key := method + " " + path + " " + c.Token() + " " + string(payload)
	ch := c.inflight.DoChan(key, func() (any, error) {
		return c.do(context.WithoutCancel(ctx), method, path, nil, payload)
	})

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s %s: %w", method, path, ctx.Err())
	case res := <-ch:
		if res.Shared {
			c.log.Debug().Str("method", method).Str("path", path).Msg("duplicate submission collapsed")
		}
		if res.Err != nil {
			return res.Err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		return decode(res.Val.([]byte), out)
	}
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, payload []byte) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if payload != nil {
		req.SetBody(payload)
	}

	route := routeLabel(path)
	start := time.Now()
	resp, err := req.Execute(method, path)
	metrics.RemoteRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(method, route, "error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("remote call failed")
		return nil, domain.NewRemoteError(0, "")
	}

	code := resp.StatusCode()
	metrics.RemoteRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()

	// The caller may have gone away while the response was in flight; its
	// result must not update anything.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, ctxErr)
	}

	if resp.IsError() {
		c.log.Debug().Str("method", method).Str("path", path).Int("status", code).Msg("remote call rejected")
		return nil, domain.NewRemoteError(code, errorMessage(resp.Body()))
	}
	return resp.Body(), nil
}

// errorMessage extracts the "error" field of an error body, or "" when the
// body has none.
func errorMessage(body []byte) string {
	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error) == 0 {
		return ""
	}
	var msg string
	if err := json.Unmarshal(env.Error, &msg); err != nil {
		return ""
	}
	return strings.TrimSpace(msg)
}

func decode(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// routeLabel collapses ids out of a path so metric labels stay bounded:
// /restaurant/abc -> /restaurant/:id, /review/abc/comment -> /review/:id/comment.
func routeLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 1 && parts[0] != "auth" {
		parts[1] = ":id"
	}
	return "/" + strings.Join(parts, "/")
}

// Ping checks that the API host answers at all. Any HTTP response counts;
// only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.http.R().SetContext(ctx).Head("/"); err != nil {
		return fmt.Errorf("remote api unreachable: %w", err)
	}
	return nil
}
