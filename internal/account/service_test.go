package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drfsm113/storefront-client/internal/domain"
	"github.com/drfsm113/storefront-client/internal/dto"
	"github.com/drfsm113/storefront-client/internal/transport"
)

func newAccountClient(t *testing.T, router *gin.Engine) (*transport.Client, func()) {
	t.Helper()
	server := httptest.NewServer(router)
	client, err := transport.New(&transport.Config{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return client, server.Close
}

func TestService_UserDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/accounts/api/v1/client/current_user_details/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": domain.User{
			Slug: "jane-doe", Email: "jane@example.com", IsActive: true,
		}})
	})

	client, closeServer := newAccountClient(t, router)
	defer closeServer()
	svc := NewService(client, nil)

	user, err := svc.UserDetails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", user.Slug)
	assert.True(t, user.IsActive)
}

func TestService_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var got dto.ChangePasswordRequest
	router.POST("/accounts/api/v1/client/change-password/", func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	client, closeServer := newAccountClient(t, router)
	defer closeServer()
	svc := NewService(client, nil)

	require.NoError(t, svc.ChangePassword(context.Background(), "old-pass", "new-pass"))
	assert.Equal(t, "old-pass", got.OldPassword)
	assert.Equal(t, "new-pass", got.NewPassword)
}

func TestService_Deactivate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var got dto.UpdateProfileRequest
	router.PUT("/accounts/api/v1/client/user/:slug/update/", func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&got))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": domain.User{Slug: c.Param("slug")}})
	})

	client, closeServer := newAccountClient(t, router)
	defer closeServer()
	svc := NewService(client, nil)

	require.NoError(t, svc.Deactivate(context.Background(), "jane-doe"))
	require.NotNil(t, got.IsActive)
	assert.False(t, *got.IsActive)
}

func TestService_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var deleted string
	router.DELETE("/accounts/api/v1/client/user/:slug/delete/", func(c *gin.Context) {
		deleted = c.Param("slug")
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	client, closeServer := newAccountClient(t, router)
	defer closeServer()
	svc := NewService(client, nil)

	require.NoError(t, svc.Delete(context.Background(), "jane-doe"))
	assert.Equal(t, "jane-doe", deleted)
}
