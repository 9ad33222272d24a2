package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/utils"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// RequireAuth verifies the bearer token and attaches the caller's identity
// to the request context. The token is the full authorization state; there
// is no session store and no revocation.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		role, err := models.ParseRole(claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole gates a route on an exact role match. Runs after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get(ContextUserRole)
		if !exists || got.(models.Role) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.Next()
	}
}
