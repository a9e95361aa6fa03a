package middleware

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"notekeeper/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger prints every request before it is routed. The body is read
// and put back so handlers still see it.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(c.Request.Body)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logger.Printf("Rejected %s %s: body over %d bytes", c.Request.Method, c.Request.URL.Path, tooLarge.Limit)
				utils.RequestTooLarge(c)
				return
			}
			if err != nil {
				logger.Printf("Failed to read request body: %v", err)
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		logger.Println("Method:", c.Request.Method)
		logger.Println("Path:  ", c.Request.URL.Path)
		logger.Println("Body:  ", string(body))
		logger.Println("Client:", utils.ClientLabel(c.Request.UserAgent()))
		logger.Println("----")

		c.Next()
	}
}
