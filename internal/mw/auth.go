package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"datacenter-inventory-backend/internal/auth"
)

// ClaimsKey is the gin context key under which validated claims are stored.
const ClaimsKey = "auth_claims"

// RequireAuth validates the Authorization bearer token and stores the
// claims on the request context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
