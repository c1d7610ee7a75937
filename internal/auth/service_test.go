package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drfsm113/storefront-client/internal/domain"
	"github.com/drfsm113/storefront-client/internal/dto"
	"github.com/drfsm113/storefront-client/internal/session"
	"github.com/drfsm113/storefront-client/internal/transport"
)

// memStorage is an in-memory session.Storage for tests
type memStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{values: map[string]string{}}
}

func (m *memStorage) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStorage) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memStorage) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// accountsServer is a fake accounts API with controllable behavior
type accountsServer struct {
	router *gin.Engine

	refreshCalls int32
	refreshDelay time.Duration
	refreshFail  bool
	logoutCalls  int32
	lastLogout   dto.LogoutRequest
}

func newAccountsServer() *accountsServer {
	gin.SetMode(gin.TestMode)
	s := &accountsServer{router: gin.New()}

	s.router.POST("/accounts/api/user-login/", func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Password != "correct-horse" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{
			Success: true,
			Access:  "access-1",
			Refresh: "refresh-1",
			User:    &domain.User{Slug: "jane-doe", Email: req.Email},
			Role:    "customer",
		})
	})

	s.router.POST("/accounts/api/token/refresh/", func(c *gin.Context) {
		atomic.AddInt32(&s.refreshCalls, 1)
		if s.refreshDelay > 0 {
			time.Sleep(s.refreshDelay)
		}
		if s.refreshFail {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, dto.RefreshResponse{Access: "access-2"})
	})

	s.router.POST("/accounts/api/user-logout/", func(c *gin.Context) {
		atomic.AddInt32(&s.logoutCalls, 1)
		_ = c.ShouldBindJSON(&s.lastLogout)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	s.router.POST("/accounts/api/register/", func(c *gin.Context) {
		c.JSON(http.StatusCreated, dto.RegisterResponse{Success: true})
	})

	return s
}

func newTestService(t *testing.T, server *httptest.Server) (*Service, *session.Store) {
	t.Helper()
	store := session.NewStore(newMemStorage(), "authState", nil)
	api, err := transport.New(&transport.Config{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return NewService(store, api, nil), store
}

func TestService_Login(t *testing.T) {
	accounts := newAccountsServer()
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	svc, store := newTestService(t, server)

	t.Run("success stores tokens and identity", func(t *testing.T) {
		out, err := svc.Login(context.Background(), "jane@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "customer", out.Role)

		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "access-1", store.AccessToken())
		assert.Equal(t, "refresh-1", store.RefreshToken())
		require.NotNil(t, store.User())
		assert.Equal(t, "jane@example.com", store.User().Email)
		assert.Equal(t, domain.RoleCustomer, store.Role())
	})

	t.Run("bad credentials", func(t *testing.T) {
		store.Clear(context.Background())
		_, err := svc.Login(context.Background(), "jane@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.False(t, store.IsAuthenticated())
	})
}

func TestService_Logout(t *testing.T) {
	accounts := newAccountsServer()
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	svc, store := newTestService(t, server)
	store.SetTokens(context.Background(), "access-1", "refresh-1")

	svc.Logout(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, int32(1), atomic.LoadInt32(&accounts.logoutCalls))
	assert.Equal(t, "refresh-1", accounts.lastLogout.RefreshToken)
}

func TestService_LogoutClearsEvenWhenServerFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/accounts/api/user-logout/", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})
	server := httptest.NewServer(router)
	defer server.Close()

	svc, store := newTestService(t, server)
	store.SetTokens(context.Background(), "access-1", "refresh-1")

	svc.Logout(context.Background())
	assert.False(t, store.IsAuthenticated())
}

func TestService_Refresh(t *testing.T) {
	accounts := newAccountsServer()
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	svc, store := newTestService(t, server)
	store.SetTokens(context.Background(), "access-1", "refresh-1")

	token, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)
	assert.Equal(t, "access-2", store.AccessToken())
	assert.Equal(t, "refresh-1", store.RefreshToken())
}

func TestService_RefreshWithoutTokenSkipsNetwork(t *testing.T) {
	accounts := newAccountsServer()
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	svc, store := newTestService(t, server)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(0), atomic.LoadInt32(&accounts.refreshCalls))
	assert.False(t, store.IsAuthenticated())
}

func TestService_RefreshRejectionForcesLogout(t *testing.T) {
	accounts := newAccountsServer()
	accounts.refreshFail = true
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	svc, store := newTestService(t, server)
	store.SetTokens(context.Background(), "access-1", "refresh-1")

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.RefreshToken())
}

func TestService_ConcurrentRefreshesShareOneCall(t *testing.T) {
	accounts := newAccountsServer()
	accounts.refreshDelay = 50 * time.Millisecond
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	svc, _ := newTestService(t, server)
	svc.store.SetTokens(context.Background(), "access-1", "refresh-1")

	const n = 5
	tokens := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = svc.Refresh(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&accounts.refreshCalls),
		"concurrent refreshes must collapse into one exchange")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "access-2", tokens[i])
	}
}

func TestService_ConcurrentRefreshFailuresShareOneOutcome(t *testing.T) {
	accounts := newAccountsServer()
	accounts.refreshDelay = 50 * time.Millisecond
	accounts.refreshFail = true
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	svc, store := newTestService(t, server)
	store.SetTokens(context.Background(), "access-1", "refresh-1")

	const n = 4
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Refresh(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&accounts.refreshCalls))
	for i := 0; i < n; i++ {
		assert.ErrorIs(t, errs[i], ErrSessionExpired)
	}
	assert.False(t, store.IsAuthenticated())
}

func TestService_RefreshAndReplayAcrossConcurrentRequests(t *testing.T) {
	accounts := newAccountsServer()
	accounts.refreshDelay = 30 * time.Millisecond
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	var resourceHits int32
	accounts.router.GET("/api/v1/client/orders/", func(c *gin.Context) {
		atomic.AddInt32(&resourceHits, 1)
		if c.GetHeader("Authorization") != "Bearer access-2" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	svc, store := newTestService(t, server)
	store.SetTokens(context.Background(), "stale-access", "refresh-1")

	api, err := transport.New(&transport.Config{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Hooks:      []transport.RequestHook{transport.BearerHook(store)},
		Refresher:  svc,
	})
	require.NoError(t, err)

	const n = 3
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = api.Get(context.Background(), "api/v1/client/orders/", nil)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}
	// One shared token exchange; every request sent at most twice.
	assert.Equal(t, int32(1), atomic.LoadInt32(&accounts.refreshCalls))
	assert.LessOrEqual(t, atomic.LoadInt32(&resourceHits), int32(2*n))
	assert.Equal(t, "access-2", store.AccessToken())
}

func TestService_Register(t *testing.T) {
	accounts := newAccountsServer()
	server := httptest.NewServer(accounts.router)
	defer server.Close()

	svc, store := newTestService(t, server)

	out, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.False(t, store.IsAuthenticated(), "registration must not log the user in")
}
