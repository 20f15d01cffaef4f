package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware identifies the storefront device: an opaque key the
// frontend generates once and sends on every request. This is convenience
// scoping, not authentication.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Device-Key")
		if key == "" {
			key = c.Query("deviceKey") // websocket clients can't set headers
		}
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing device key"})
			c.Abort()
			return
		}
		c.Set("deviceKey", key)
		c.Next()
	}
}
