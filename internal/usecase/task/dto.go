package task

import (
	domainTask "github.com/Ansy5566/ctosaas/internal/domain/task"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

func init() {
	utils.MustRegisterEnumValidation("platform", domainTask.PlatformNames()...)
	utils.MustRegisterEnumValidation("collection_type", string(domainTask.TypeSingle), string(domainTask.TypeCategory))
}

type CreateTaskRequest struct {
	Platform string `json:"platform" validate:"required,platform"`
	Type     string `json:"type" validate:"required,collection_type"`
	URL      string `json:"url" validate:"required"`
}
