package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/internal/auth"
)

// RequireUser validates the bearer token and injects the userId into the
// context. It is a pure token check and never touches the store.
func RequireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: No token provided or invalid token format"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Println("[AUTH] [ERROR] invalid token format")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: No token provided or invalid token format"})
			return
		}

		userID, err := auth.VerifyToken(parts[1], secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Invalid token"})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}
