package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Ansy5566/ctosaas/internal/usecase/export"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

type ExportHandler struct {
	service *export.Service
}

func NewExportHandler(service *export.Service) *ExportHandler {
	return &ExportHandler{service: service}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	exports := router.Group("/export")
	{
		exports.GET("", h.ListExports)
		exports.POST("", h.CreateExport)
		exports.GET("/:id/download", h.Download)
	}
}

func (h *ExportHandler) ListExports(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	records, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", records)
}

func (h *ExportHandler) CreateExport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req export.CreateExportRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Export created successfully", record)
}

// Download streams the stored CSV as an attachment.
func (h *ExportHandler) Download(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	dl, err := h.service.Download(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(dl.FileName)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(dl.CSV))
}
