package product

import appErrors "github.com/Ansy5566/ctosaas/pkg/errors"

var (
	ErrProductNotFound = appErrors.NewAppError(appErrors.CodeNotFound, "product not found", nil)
	ErrEmptyBatch      = appErrors.Validation("productIds must not be empty", nil)
)
