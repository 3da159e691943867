package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainUser "github.com/Ansy5566/ctosaas/internal/domain/user"
	appErrors "github.com/Ansy5566/ctosaas/pkg/errors"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

const (
	SessionCookieName = "session_id"

	UserKey   = "user"
	UserIDKey = "userID"
)

// Authenticator resolves a session credential to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (*domainUser.User, error)
}

// Credential returns the session credential of the request: the session
// cookie, or else a Bearer token.
func Credential(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionMiddleware rejects requests without a live session and stores the
// session owner in the context.
func SessionMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), Credential(c))
		if err != nil {
			SetErrorCode(c, appErrors.CodeOf(err))
			if appErrors.KindOf(err) != appErrors.KindUnauthorized {
				RequestLogger(c).Error("Failed to resolve session", zap.Error(err))
				utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
				c.Abort()
				return
			}
			utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*domainUser.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domainUser.User)
	return user, ok && user != nil
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
