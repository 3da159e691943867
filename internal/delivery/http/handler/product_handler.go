package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ansy5566/ctosaas/internal/usecase/product"
	"github.com/Ansy5566/ctosaas/pkg/utils"
)

type ProductHandler struct {
	service *product.Service
}

func NewProductHandler(service *product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/batch/delete", h.BatchDelete)
		products.POST("/batch/update", h.BatchUpdate)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var query product.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid query parameters")
		return
	}
	query.Search = utils.SanitizeString(query.Search)

	page, err := h.service.List(c.Request.Context(), userID, &query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", page)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var raw map[string]interface{}
	if !bindJSON(c, &raw) {
		return
	}
	sanitizePatch(raw)

	p, err := h.service.Update(c.Request.Context(), userID, c.Param("id"), raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product updated successfully", p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) BatchDelete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req product.BatchDeleteRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.BatchDelete(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Products deleted successfully", resp)
}

func (h *ProductHandler) BatchUpdate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req product.BatchUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.BatchUpdate(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Products updated successfully", resp)
}

// sanitizePatch cleans the free-text fields of a product patch. Descriptions
// keep their line breaks.
func sanitizePatch(raw map[string]interface{}) {
	if title, ok := raw["title"].(string); ok {
		raw["title"] = utils.SanitizeString(title)
	}
	if description, ok := raw["description"].(string); ok {
		raw["description"] = utils.SanitizeText(description)
	}
}
