package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/pkg/utils"
)

const DefaultMaxRequestBytes = 10 << 20

// TooLargeMessage is the client message for a body over limit bytes.
func TooLargeMessage(limit int64) string {
	return fmt.Sprintf("request body exceeds %d bytes", limit)
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes. A declared
// length over the cap is refused before any handler runs; an undeclared one
// is cut off by MaxBytesReader and reported when the handler binds it.
func RequestSizeLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBytes
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			RequestLogger(c).Warn("Request body over limit",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("limit", maxBytes),
			)
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, TooLargeMessage(maxBytes))
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
