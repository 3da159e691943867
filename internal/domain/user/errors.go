package user

import appErrors "github.com/Ansy5566/ctosaas/pkg/errors"

var (
	ErrUserNotFound       = appErrors.NewAppError(appErrors.CodeNotFound, "user not found", nil)
	ErrDuplicateEmail     = appErrors.NewAppError(appErrors.CodeDuplicate, "email is already registered", nil)
	ErrResetTokenNotFound = appErrors.NewAppError(appErrors.CodeNotFound, "reset token not found", nil)
)
