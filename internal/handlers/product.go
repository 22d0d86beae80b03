// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /api/products[?id=]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		product, err := h.productService.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "product")
			return
		}
		utils.SuccessResponse(c, catalog.EncodeProduct(product))
		return
	}

	params := utils.GetPaginationParams(c)
	filter := repository.ProductFilter{
		Category: params.Category,
		Search:   params.Search,
		Status:   c.Query("status"),
		Page:     params.Page,
		Limit:    params.Limit,
		Sort:     params.Sort,
		Order:    params.Order,
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	data := catalog.EncodeProducts(products)
	if !params.Paginated() {
		utils.SuccessResponse(c, data)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(data, total, params))
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	fields, ok := decodeProductBody(c)
	if !ok {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, catalog.EncodeProduct(product))
}

// PUT /api/products?id=
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	fields, ok := decodeProductBody(c)
	if !ok {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, catalog.EncodeProduct(product))
}

// DELETE /api/products?id=
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": true,
		"id":      id,
	})
}

func decodeProductBody(c *gin.Context) (catalog.ProductFields, bool) {
	lang := utils.GetLangFromContext(c)

	body, err := c.GetRawData()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalid), nil)
		return catalog.ProductFields{}, false
	}

	fields, err := catalog.DecodeProduct(body)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalid), err.Error())
		return catalog.ProductFields{}, false
	}
	return fields, true
}
