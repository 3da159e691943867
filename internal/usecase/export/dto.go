package export

import (
	domainExport "github.com/Ansy5566/ctosaas/internal/domain/export"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

func init() {
	formats := make([]string, len(domainExport.Formats))
	for i, f := range domainExport.Formats {
		formats[i] = string(f)
	}
	utils.MustRegisterEnumValidation("export_format", formats...)
}

// CreateExportRequest selects the products to export. Without ids every
// product of the user is exported.
type CreateExportRequest struct {
	Format     string   `json:"format" validate:"required,export_format"`
	ProductIDs []string `json:"productIds"`
}

type Download struct {
	FileName string
	CSV      string
}
