package export

import appErrors "github.com/Ansy5566/ctosaas/pkg/errors"

var ErrExportNotFound = appErrors.NewAppError(appErrors.CodeNotFound, "export record not found", nil)
