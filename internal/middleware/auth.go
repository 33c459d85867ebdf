package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth guards the API routes with the static keys from config.
// Keys are accepted as "Authorization: Bearer <key>" or "X-API-Key: <key>".
// With no keys configured the gateway runs open (local development).
func APIKeyAuth(keys []string) gin.HandlerFunc {
	keySet := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(keySet) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if _, ok := keySet[key]; !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "unauthorized",
				"message":   "missing or invalid API key",
				"timestamp": time.Now().UTC(),
			})
			return
		}
		c.Next()
	}
}
