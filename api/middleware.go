package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourdesk/internal/auth"
	"tourdesk/internal/domain"
)

// Context keys populated by AuthMiddleware.
const (
	ContextUserID    = "userId"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity on the request context.
func AuthMiddleware(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing or invalid authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Missing or invalid authorization header")
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin runs after AuthMiddleware and gates admin routes on the
// role claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != string(domain.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, envelope{Error: "Admins only"})
			return
		}
		c.Next()
	}
}
