package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// Header names set by the built-in hooks
const (
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "X-Idempotency-Key"
)

// RequestHook transforms an outgoing request before it is sent. Hooks run
// in registration order.
type RequestHook func(req *http.Request) error

// TokenSource yields the current access token; empty means unauthenticated
type TokenSource interface {
	AccessToken() string
}

// BearerHook attaches the current access token as a Bearer Authorization
// header. An Authorization header already present on the request wins; the
// replay after a refresh sets it explicitly. Requests without a token go
// out unauthenticated and the server decides whether the endpoint requires
// auth.
func BearerHook(tokens TokenSource) RequestHook {
	return func(req *http.Request) error {
		if req.Header.Get("Authorization") != "" {
			return nil
		}
		if token := tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// RequestIDHook tags every request with a fresh X-Request-ID
func RequestIDHook() RequestHook {
	return func(req *http.Request) error {
		req.Header.Set(HeaderRequestID, uuid.New().String())
		return nil
	}
}

// IdempotencyKeyHook tags mutating requests with an idempotency key so a
// replayed call after token refresh cannot double-apply server side.
func IdempotencyKeyHook() RequestHook {
	return func(req *http.Request) error {
		switch req.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if req.Header.Get(HeaderIdempotencyKey) == "" {
				req.Header.Set(HeaderIdempotencyKey, uuid.New().String())
			}
		}
		return nil
	}
}

// UserAgentHook sets the client's User-Agent
func UserAgentHook(agent string) RequestHook {
	return func(req *http.Request) error {
		if agent != "" {
			req.Header.Set("User-Agent", agent)
		}
		return nil
	}
}
