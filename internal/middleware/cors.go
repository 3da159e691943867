package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Ansy5566/ctosaas/internal/config"
)

// Headers the API depends on regardless of configuration.
var (
	requiredAllowHeaders  = []string{"Content-Type", "Authorization", RequestIDHeader}
	requiredExposeHeaders = []string{RequestIDHeader, "Content-Disposition"}
)

func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

// corsConfig translates the configured policy. Browsers refuse a literal
// "*" on credentialed requests, so a wildcard with credentials echoes the
// request origin instead. No configured origin allows none.
func corsConfig(cfg *config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     withHeaders(cfg.AllowedHeaders, requiredAllowHeaders),
		ExposeHeaders:    withHeaders(cfg.ExposedHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}
	}

	switch {
	case slices.Contains(cfg.AllowedOrigins, "*") && cfg.AllowCredentials:
		c.AllowOriginFunc = func(string) bool { return true }
	case slices.Contains(cfg.AllowedOrigins, "*"):
		c.AllowAllOrigins = true
	case len(cfg.AllowedOrigins) == 0:
		c.AllowOriginFunc = func(string) bool { return false }
	default:
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

func withHeaders(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(have string) bool { return strings.EqualFold(have, h) }) {
			out = append(out, h)
		}
	}
	return out
}
