package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Doer abstracts the underlying HTTP client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Refresher obtains a replacement access token after an authorization
// failure. Exactly one refresh call may be in flight at a time, regardless
// of how many requests fail concurrently; that contract belongs to the
// implementation (see the auth package).
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// outcome is the response-phase decision for one reply
type outcome int

const (
	outcomePass outcome = iota
	outcomeRetryAuth
	outcomeFail
)

// decide maps a status code and the per-request replay flag to the recovery
// decision. Kept pure so the retry-once rule is testable on its own.
func decide(statusCode int, retried bool) outcome {
	if statusCode != http.StatusUnauthorized {
		return outcomePass
	}
	if retried {
		return outcomeFail
	}
	return outcomeRetryAuth
}

// Config holds transport settings
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the underlying client (tests); nil builds one
	// from Timeout.
	HTTPClient Doer
	// Hooks transform every outgoing request, in order.
	Hooks []RequestHook
	// Refresher drives 401 recovery; nil disables it (auth endpoints).
	Refresher Refresher
	Logger    *zap.Logger
}

// Client issues requests against the remote storefront API. Every outbound
// call runs the hook pipeline; a 401 reply hands off to the Refresher and
// replays the original request exactly once with the fresh token.
type Client struct {
	base      *url.URL
	http      Doer
	hooks     []RequestHook
	refresher Refresher
	log       *zap.Logger
}

// New creates a Client from cfg
func New(cfg *Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		base:      base,
		http:      httpClient,
		hooks:     cfg.Hooks,
		refresher: cfg.Refresher,
		log:       log,
	}, nil
}

// Do sends req and returns the final response after at most one
// refresh-and-replay cycle. Network-level failures propagate to the caller
// untouched and never trigger a refresh.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	body, err := io.ReadAll(httpResp.Body)
	httpResp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", req.Method, req.Path, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}

	switch decide(resp.StatusCode, req.retried) {
	case outcomeRetryAuth:
		// Without a Refresher there is no recovery machinery; the 401
		// passes through like any other error status.
		if c.refresher == nil {
			return resp, nil
		}
		req.retried = true
		c.log.Debug("access token rejected, refreshing",
			zap.String("method", req.Method), zap.String("path", req.Path))

		token, refreshErr := c.refresher.Refresh(ctx)
		if refreshErr != nil {
			return nil, refreshErr
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return c.Do(ctx, req)

	case outcomeFail:
		c.log.Warn("request unauthorized after token refresh",
			zap.String("method", req.Method), zap.String("path", req.Path))
		return nil, fmt.Errorf("%w: %s %s", ErrUnauthenticated, req.Method, req.Path)
	}

	return resp, nil
}

func (c *Client) buildHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	// JoinPath would escape a "?" as part of the path, so split the query
	// off first.
	path := strings.TrimPrefix(req.Path, "/")
	var rawQuery string
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, rawQuery = path[:i], path[i+1:]
	}
	target := c.base.JoinPath(path)
	target.RawQuery = rawQuery

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	// Explicit request headers come first so the replay's rewritten
	// Authorization header survives the hook pass below.
	for name, values := range req.Header {
		for i, v := range values {
			if i == 0 {
				httpReq.Header.Set(name, v)
			} else {
				httpReq.Header.Add(name, v)
			}
		}
	}

	for _, hook := range c.hooks {
		if err := hook(httpReq); err != nil {
			return nil, fmt.Errorf("request hook failed: %w", err)
		}
	}

	// Pin the idempotency key on the original request so a replay reuses
	// it and the server can deduplicate.
	if key := httpReq.Header.Get(HeaderIdempotencyKey); key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}

	return httpReq, nil
}

// do is the shared verb helper: non-2xx becomes an *APIError, 2xx decodes
// into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	req, err := NewRequest(method, path, in)
	if err != nil {
		return err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.apiError()
	}
	if out != nil {
		if err := resp.DecodeData(out); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}
	return nil
}

// Get issues an authenticated GET
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues an authenticated POST with a JSON body
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// Put issues an authenticated PUT with a JSON body
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

// Delete issues an authenticated DELETE
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}
