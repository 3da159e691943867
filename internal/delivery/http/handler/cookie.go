package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ansy5566/ctosaas/internal/config"
	"github.com/Ansy5566/ctosaas/internal/middleware"
)

func setSessionCookie(c *gin.Context, cfg *config.Config, credential string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, credential, int(cfg.SessionTTL().Seconds()), "/", "", cfg.IsProduction(), true)
}

func clearSessionCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", cfg.IsProduction(), true)
}
