package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ansy5566/ctosaas/internal/config"
	"github.com/Ansy5566/ctosaas/internal/middleware"
	"github.com/Ansy5566/ctosaas/internal/usecase/auth"
	"github.com/Ansy5566/ctosaas/internal/usecase/user"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

type AuthHandler struct {
	service *auth.Service
	cfg     *config.Config
}

func NewAuthHandler(service *auth.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{service: service, cfg: cfg}
}

type authResponse struct {
	User      *user.UserResponse `json:"user"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
		authGroup.GET("/session", middleware.SessionMiddleware(h.service), h.Session)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)
	req.Name = utils.SanitizeString(req.Name)

	u, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.startSession(c, http.StatusCreated, "User registered successfully", user.ToUserResponse(u))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	u, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.startSession(c, http.StatusOK, "Login successful", user.ToUserResponse(u))
}

func (h *AuthHandler) startSession(c *gin.Context, status int, message string, u *user.UserResponse) {
	credential, sess, err := h.service.StartSession(c.Request.Context(), u.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	setSessionCookie(c, h.cfg, credential)
	utils.SuccessResponse(c, status, message, authResponse{
		User:      u,
		Token:     credential,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Logout succeeds with or without a live session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := h.service.SessionID(middleware.Credential(c))
	if err := h.service.DestroySession(c.Request.Context(), sessionID); err != nil {
		respondWithError(c, err)
		return
	}

	clearSessionCookie(c, h.cfg)
	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) Session(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"user": user.ToUserResponse(u)})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req auth.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	resp, err := h.service.ForgotPassword(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If the email exists, a reset link has been sent", resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req auth.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}
