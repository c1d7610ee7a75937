package di

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/drfsm113/storefront-client/internal/account"
	"github.com/drfsm113/storefront-client/internal/auth"
	"github.com/drfsm113/storefront-client/internal/catalog"
	"github.com/drfsm113/storefront-client/internal/config"
	"github.com/drfsm113/storefront-client/internal/session"
	"github.com/drfsm113/storefront-client/internal/store"
	"github.com/drfsm113/storefront-client/internal/transport"
)

// Container wires the whole client together. There is no package-level
// instance: callers build as many containers as they need, each with its
// own session and caches.
type Container struct {
	Config  *config.Config
	Log     *zap.Logger
	Session *session.Store

	// API is the authenticated transport: bearer attach, request IDs,
	// idempotency keys and 401 refresh-and-replay.
	API *transport.Client

	Auth     *auth.Service
	Cart     *store.Cart
	Wishlist *store.Wishlist
	Account  *account.Service
	Catalog  *catalog.Service
	Admin    *catalog.AdminService
	Notifier store.Notifier

	closers []io.Closer
}

// New builds a fully wired container and restores the persisted session
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Container{Config: cfg, Log: log}

	storage, err := c.buildStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c.Session = session.NewStore(storage, cfg.Session.Key, log)
	c.Session.Load(ctx)

	// The accounts transport carries no Refresher: a failing refresh call
	// must surface directly instead of triggering another refresh.
	accountsAPI, err := transport.New(&transport.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Hooks: []transport.RequestHook{
			transport.RequestIDHook(),
			transport.UserAgentHook(cfg.API.UserAgent),
		},
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build accounts transport: %w", err)
	}

	c.Auth = auth.NewService(c.Session, accountsAPI, log)

	c.API, err = transport.New(&transport.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Hooks: []transport.RequestHook{
			transport.BearerHook(c.Session),
			transport.RequestIDHook(),
			transport.IdempotencyKeyHook(),
			transport.UserAgentHook(cfg.API.UserAgent),
		},
		Refresher: c.Auth,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build API transport: %w", err)
	}

	c.Notifier = store.NewLogNotifier(log)
	c.Cart = store.NewCart(c.API, c.Notifier, log)
	c.Wishlist = store.NewWishlist(c.API, c.Notifier, log)
	c.Account = account.NewService(c.API, log)
	c.Catalog = catalog.NewService(c.API, log)
	c.Admin = catalog.NewAdminService(c.API, log)

	return c, nil
}

func (c *Container) buildStorage(ctx context.Context, cfg *config.Config) (session.Storage, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		storage, err := session.NewRedisStorage(ctx, &session.RedisConfig{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build redis session storage: %w", err)
		}
		c.closers = append(c.closers, storage)
		return storage, nil
	case config.SessionBackendFile:
		storage, err := session.NewFileStorage(cfg.Session.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to build file session storage: %w", err)
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}
}

// Logout ends the session and drops every per-user cache
func (c *Container) Logout(ctx context.Context) {
	c.Auth.Logout(ctx)
	c.Cart.Reset()
	c.Wishlist.Reset()
}

// Close releases held connections
func (c *Container) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
