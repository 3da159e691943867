package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ansy5566/ctosaas/internal/config"
	"github.com/Ansy5566/ctosaas/internal/logger"
	"github.com/Ansy5566/ctosaas/internal/middleware"
	"github.com/Ansy5566/ctosaas/internal/usecase/user"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

type UserHandler struct {
	service *user.Service
	cfg     *config.Config
}

func NewUserHandler(service *user.Service, cfg *config.Config) *UserHandler {
	return &UserHandler{service: service, cfg: cfg}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	userGroup := router.Group("/user")
	{
		userGroup.GET("/profile", h.GetProfile)
		userGroup.PUT("/profile", h.UpdateProfile)
		userGroup.GET("/subscription", h.GetSubscription)
		userGroup.GET("/statistics", h.GetStatistics)
		userGroup.POST("/delete", h.DeleteAccount)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", user.ToUserResponse(profile))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		sanitized := utils.SanitizeString(*req.Name)
		req.Name = &sanitized
	}
	if req.Avatar != nil {
		sanitized := utils.SanitizeString(*req.Avatar)
		req.Avatar = &sanitized
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", user.ToUserResponse(profile))
}

func (h *UserHandler) GetSubscription(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.service.GetSubscription(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", sub)
}

func (h *UserHandler) GetStatistics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.service.GetStatistics(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	clearSessionCookie(c, h.cfg)
	middleware.RequestLogger(c).Info("Session cookie cleared after account deletion",
		logger.Event("session_cookie_cleared"),
	)
	utils.SuccessResponse(c, http.StatusOK, "Account deleted successfully", nil)
}
