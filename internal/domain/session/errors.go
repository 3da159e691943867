package session

import appErrors "github.com/Ansy5566/ctosaas/pkg/errors"

var ErrSessionNotFound = appErrors.NewAppError(appErrors.CodeUnauthorized, "session not found", nil)
