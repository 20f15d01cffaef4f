package utils

import "github.com/gin-gonic/gin"

// DeviceKey reads the storefront device key the session middleware set.
func DeviceKey(c *gin.Context) string {
	if v, ok := c.Get("deviceKey"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
