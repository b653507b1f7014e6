package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tourdesk/internal/auth"
	"tourdesk/internal/domain"
)

func newTestTokens() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTestTokens()
	token, err := tokens.GenerateToken(&domain.User{
		ID:    "user-1",
		Email: "asha@example.com",
		Role:  domain.RoleUser,
	})
	assert.NoError(t, err)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(tokens)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, "user-1", c.GetString(ContextUserID))
	assert.Equal(t, "asha@example.com", c.GetString(ContextUserEmail))
	assert.Equal(t, string(domain.RoleUser), c.GetString(ContextUserRole))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	AuthMiddleware(newTestTokens())(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)
	c.Request.Header.Set("Authorization", "Token abc123")

	AuthMiddleware(newTestTokens())(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer not-a-token")

	AuthMiddleware(newTestTokens())(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	other := auth.NewManager("other-secret", time.Hour)
	token, err := other.GenerateToken(&domain.User{ID: "user-1"})
	assert.NoError(t, err)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	AuthMiddleware(newTestTokens())(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/admin/bookings", nil)
	c.Set(ContextUserRole, string(domain.RoleAdmin))

	RequireAdmin()(c)

	assert.False(t, c.IsAborted())
}

func TestRequireAdmin_RejectsUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/admin/bookings", nil)
	c.Set(ContextUserRole, string(domain.RoleUser))

	RequireAdmin()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
