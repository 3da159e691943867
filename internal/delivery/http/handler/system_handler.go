package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ansy5566/ctosaas/internal/usecase/system"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

// SystemHandler serves the public feeds
type SystemHandler struct {
	service *system.Service
}

func NewSystemHandler(service *system.Service) *SystemHandler {
	return &SystemHandler{service: service}
}

func (h *SystemHandler) RegisterRoutes(router *gin.RouterGroup) {
	sys := router.Group("/system")
	{
		sys.GET("/announcements", h.Announcements)
		sys.GET("/changelog", h.Changelog)
	}
}

func (h *SystemHandler) Announcements(c *gin.Context) {
	announcements, err := h.service.Announcements(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", announcements)
}

func (h *SystemHandler) Changelog(c *gin.Context) {
	changelog, err := h.service.Changelog(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", changelog)
}
