package transport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerHook_ExistingHeaderWins(t *testing.T) {
	hook := BearerHook(&staticTokens{token: "stale"})

	req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer fresh")

	require.NoError(t, hook(req))
	assert.Equal(t, "Bearer fresh", req.Header.Get("Authorization"))
}

func TestIdempotencyKeyHook(t *testing.T) {
	hook := IdempotencyKeyHook()

	t.Run("tags mutating methods", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			req, err := http.NewRequest(method, "http://example.com/", nil)
			require.NoError(t, err)
			require.NoError(t, hook(req))
			assert.NotEmpty(t, req.Header.Get(HeaderIdempotencyKey), method)
		}
	})

	t.Run("skips reads", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
		require.NoError(t, err)
		require.NoError(t, hook(req))
		assert.Empty(t, req.Header.Get(HeaderIdempotencyKey))
	})

	t.Run("keeps an existing key", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, "http://example.com/", nil)
		require.NoError(t, err)
		req.Header.Set(HeaderIdempotencyKey, "pinned")
		require.NoError(t, hook(req))
		assert.Equal(t, "pinned", req.Header.Get(HeaderIdempotencyKey))
	})
}

func TestUserAgentHook(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.com/", nil)
	require.NoError(t, err)

	require.NoError(t, UserAgentHook("storefront-client/1.0")(req))
	assert.Equal(t, "storefront-client/1.0", req.Header.Get("User-Agent"))

	require.NoError(t, UserAgentHook("")(req))
	assert.Equal(t, "storefront-client/1.0", req.Header.Get("User-Agent"))
}
