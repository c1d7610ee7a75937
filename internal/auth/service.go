package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/drfsm113/storefront-client/internal/domain"
	"github.com/drfsm113/storefront-client/internal/dto"
	"github.com/drfsm113/storefront-client/internal/session"
	"github.com/drfsm113/storefront-client/internal/transport"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired means the refresh token itself was rejected or
	// absent. The session is cleared before this is returned; the caller
	// observes a forced logout.
	ErrSessionExpired = errors.New("session expired")
)

// Account API paths
const (
	loginPath    = "accounts/api/user-login/"
	logoutPath   = "accounts/api/user-logout/"
	refreshPath  = "accounts/api/token/refresh/"
	registerPath = "accounts/api/register/"
)

// Service owns the session lifecycle: login, logout, registration and the
// token refresh coordinator. It talks to the accounts API through a bare
// transport (no Refresher) so a refresh can never recurse into itself, and
// implements transport.Refresher for the authenticated client.
type Service struct {
	store *session.Store
	api   *transport.Client
	log   *zap.Logger

	// refreshGroup collapses concurrent refresh demands into one network
	// call whose result every waiter shares.
	refreshGroup singleflight.Group
}

// NewService creates an auth service over the bare accounts transport
func NewService(store *session.Store, api *transport.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store: store,
		api:   api,
		log:   log,
	}
}

// Login authenticates against the accounts API and, on success, stores the
// token pair and the user identity.
func (s *Service) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := s.api.Post(ctx, loginPath, dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		if transport.IsStatus(err, 401) || transport.IsStatus(err, 400) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !out.Success || out.Access == "" {
		return nil, ErrInvalidCredentials
	}

	s.store.SetTokens(ctx, out.Access, out.Refresh)
	s.store.SetUser(ctx, out.User, domain.Role(out.Role))
	s.log.Info("logged in", zap.String("email", email), zap.String("role", out.Role))
	return &out, nil
}

// Register creates a new account. It does not log the user in; an
// explicit login is required afterwards.
func (s *Service) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	if err := s.api.Post(ctx, registerPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the server (best effort) and unconditionally clears the
// local session. Server-side failures are logged, never returned.
func (s *Service) Logout(ctx context.Context) {
	if refresh := s.store.RefreshToken(); refresh != "" {
		err := s.api.Post(ctx, logoutPath, dto.LogoutRequest{RefreshToken: refresh}, nil)
		if err != nil {
			s.log.Warn("server logout failed, clearing local session anyway", zap.Error(err))
		}
	}
	s.store.Clear(ctx)
	s.log.Info("logged out")
}

// Refresh exchanges the refresh token for a new access token. Concurrent
// callers share a single in-flight exchange: all of them settle with the
// same token or the same error. Any failure (missing refresh token,
// network error, non-2xx) clears the session and reports ErrSessionExpired.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	v, err, _ := s.refreshGroup.Do("token-refresh", func() (any, error) {
		return s.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Service) doRefresh(ctx context.Context) (string, error) {
	refresh := s.store.RefreshToken()
	if refresh == "" {
		s.store.Clear(ctx)
		return "", ErrSessionExpired
	}

	var out dto.RefreshResponse
	err := s.api.Post(ctx, refreshPath, dto.RefreshRequest{Refresh: refresh}, &out)
	if err != nil {
		s.store.Clear(ctx)
		s.log.Warn("token refresh failed, forcing logout", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	if out.Access == "" {
		s.store.Clear(ctx)
		return "", fmt.Errorf("%w: refresh reply carried no access token", ErrSessionExpired)
	}

	s.store.SetAccessToken(ctx, out.Access)
	s.log.Debug("access token refreshed")
	return out.Access, nil
}

// IsAuthenticated reports whether a session is active
func (s *Service) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}

// AccessToken returns the current access token for route guards
func (s *Service) AccessToken() string {
	return s.store.AccessToken()
}

// CurrentUser returns the stored identity, or nil when logged out
func (s *Service) CurrentUser() *domain.User {
	return s.store.User()
}

// Claims exposes the identity claims inside the access token
func (s *Service) Claims() (*domain.Claims, bool) {
	return s.store.Claims()
}
