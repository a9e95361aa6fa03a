package middleware

import "github.com/gin-gonic/gin"

// NoStoreMiddleware stops browsers and proxies from caching API responses;
// every read has to reach the store.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
