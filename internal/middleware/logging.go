package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/internal/logger"
)

const ErrorCodeKey = "errorCode"

// SetErrorCode records the error code of the response for the access log.
func SetErrorCode(c *gin.Context, code string) {
	c.Set(ErrorCodeKey, code)
}

func ErrorCode(c *gin.Context) string {
	return c.GetString(ErrorCodeKey)
}

// RequestLogger returns the process logger scoped to the request id and,
// behind the session middleware, the current user.
func RequestLogger(c *gin.Context) *zap.Logger {
	return logger.ForRequest(GetRequestID(c), CurrentUserID(c))
}

// LoggingMiddleware writes one access entry per request after the handler
// chain has run, so the session user and error code are known by then.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", routeOf(c)),
			zap.Int("status_code", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if code := ErrorCode(c); code != "" {
			fields = append(fields, zap.String("error_code", code))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("error", errs))
		}

		log := RequestLogger(c)
		switch {
		case status >= 500:
			log.Error("Request failed", fields...)
		case status >= 400:
			log.Warn("Request rejected", fields...)
		case c.Request.URL.Path == "/health":
			log.Debug("Health check", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

// routeOf prefers the matched route pattern so ids stay out of the route field.
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return c.Request.URL.Path
}
