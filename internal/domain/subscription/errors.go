package subscription

import appErrors "github.com/Ansy5566/ctosaas/pkg/errors"

var ErrSubscriptionNotFound = appErrors.NewAppError(appErrors.CodeNotFound, "subscription not found", nil)
