package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ansy5566/ctosaas/internal/middleware"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

// respondWithError maps an error kind to its HTTP status. Internal errors
// are logged and answered with a generic message.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	middleware.SetErrorCode(c, appErrors.CodeOf(err))

	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) || appErr.Kind() == appErrors.KindInternal {
		middleware.RequestLogger(c).Error("Internal server error",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Kind() {
	case appErrors.KindUnauthorized:
		utils.ErrorResponse(c, http.StatusUnauthorized, appErr.Message)
	case appErrors.KindNotFound:
		utils.ErrorResponse(c, http.StatusNotFound, appErr.Message)
	default:
		if appErr.Code == appErrors.CodeValidation {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, appErr.Message)
	}
}

// bindJSON decodes the request body into obj and answers 400, or 413 for an
// oversized body, when that fails.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, middleware.TooLargeMessage(tooLarge.Limit))
			return false
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// requireUserID returns the id stored by the session middleware.
func requireUserID(c *gin.Context) (string, bool) {
	userID := middleware.CurrentUserID(c)
	if userID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return userID, true
}
