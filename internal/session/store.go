package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/drfsm113/storefront-client/internal/domain"
)

// schemaVersion is bumped whenever the persisted blob shape changes; a
// stored blob with a different version is discarded and the session reset.
const schemaVersion = 1

// persistedSession is the on-disk shape of the session blob
type persistedSession struct {
	SchemaVersion int          `json:"schema_version"`
	AccessToken   string       `json:"access_token,omitempty"`
	RefreshToken  string       `json:"refresh_token,omitempty"`
	User          *domain.User `json:"user,omitempty"`
	Role          domain.Role  `json:"role,omitempty"`
}

// Store holds the current session in memory and mirrors every mutation to
// durable storage. Reads never touch the network or disk. Persistence is
// best-effort: write failures are logged and swallowed, the in-memory state
// stays authoritative for the running process.
type Store struct {
	mu      sync.RWMutex
	session domain.Session

	storage Storage
	key     string
	log     *zap.Logger
}

// NewStore creates a Store persisting under key in storage
func NewStore(storage Storage, key string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		storage: storage,
		key:     key,
		log:     log,
	}
}

// Load restores the persisted session. A missing, corrupt or
// version-mismatched blob yields an empty session, never an error.
func (s *Store) Load(ctx context.Context) {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("failed to read persisted session, starting logged out", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var stored persistedSession
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Warn("persisted session is corrupt, starting logged out", zap.Error(err))
		return
	}
	if stored.SchemaVersion != schemaVersion {
		s.log.Warn("persisted session schema mismatch, starting logged out",
			zap.Int("stored", stored.SchemaVersion),
			zap.Int("expected", schemaVersion))
		return
	}
	// Enforce the all-or-nothing invariant on whatever was stored.
	if stored.AccessToken == "" {
		return
	}

	s.mu.Lock()
	s.session = domain.Session{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		User:         stored.User,
		Role:         stored.Role,
	}
	s.mu.Unlock()
}

// persistLocked writes the current session; callers hold s.mu
func (s *Store) persistLocked(ctx context.Context) {
	blob := persistedSession{
		SchemaVersion: schemaVersion,
		AccessToken:   s.session.AccessToken,
		RefreshToken:  s.session.RefreshToken,
		User:          s.session.User,
		Role:          s.session.Role,
	}
	raw, err := json.Marshal(blob)
	if err != nil {
		s.log.Warn("failed to serialize session", zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.key, string(raw)); err != nil {
		s.log.Warn("failed to persist session", zap.Error(err))
	}
}

// SetTokens stores a fresh access/refresh token pair
func (s *Store) SetTokens(ctx context.Context, access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.AccessToken = access
	s.session.RefreshToken = refresh
	s.persistLocked(ctx)
}

// SetUser stores the authenticated identity and role
func (s *Store) SetUser(ctx context.Context, user *domain.User, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.User = user
	s.session.Role = role
	s.persistLocked(ctx)
}

// SetAccessToken replaces only the access token (refresh flow)
func (s *Store) SetAccessToken(ctx context.Context, access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.AccessToken = access
	s.persistLocked(ctx)
}

// Clear wipes the session and removes the persisted blob
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	if err := s.storage.Remove(ctx, s.key); err != nil {
		s.log.Warn("failed to remove persisted session", zap.Error(err))
	}
}

// AccessToken returns the current access token, or empty when logged out
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// RefreshToken returns the current refresh token
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.RefreshToken
}

// User returns the authenticated identity, or nil
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.User
}

// Role returns the authenticated user's role
func (s *Store) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Role
}

// IsAuthenticated reports whether an access token is present
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.IsAuthenticated()
}

// Snapshot returns a consistent copy of the whole session
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Claims decodes the identity claims carried in the current access token.
// The token is parsed without signature verification; validating it is the
// server's job, the client only reads identity and role for route guards.
func (s *Store) Claims() (*domain.Claims, bool) {
	token := s.AccessToken()
	if token == "" {
		return nil, false
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	out := &domain.Claims{}
	if v, ok := claims["user_id"].(string); ok {
		out.UserID = v
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = domain.Role(v)
	}
	return out, true
}
