package middleware

import (
	"log"
	"runtime/debug"

	"notekeeper/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns a panicking handler into a 500
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic on %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, err, debug.Stack())
				utils.TrackError("panic", c.FullPath())
				if !c.Writer.Written() {
					utils.InternalError(c, "internal server error")
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
