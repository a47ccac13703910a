package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthcare-assistant-backend/services"
)

// RequirePermission gates a route on a valid X-API-Key header whose key
// carries the named permission.
func RequirePermission(keys *services.APIKeyService, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing API key"})
			return
		}

		if !keys.KeyHasPermission(key, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "API key does not grant access to this resource"})
			return
		}

		c.Next()
	}
}
