package task

import appErrors "github.com/Ansy5566/ctosaas/pkg/errors"

var ErrTaskNotFound = appErrors.NewAppError(appErrors.CodeNotFound, "task not found", nil)
