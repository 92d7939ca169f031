package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKey guards mutative and lifecycle routes. An empty expected key
// disables the guard (development mode).
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" || key != expected {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "invalid API key",
			})
			return
		}

		c.Next()
	}
}
