// internal/handlers/category.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /api/categories[?id=]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		category, err := h.categoryService.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "category")
			return
		}
		utils.SuccessResponse(c, category)
		return
	}

	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "category")
		return
	}
	utils.SuccessResponse(c, categories)
}

// POST /api/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "category")
		return
	}

	utils.CreatedResponse(c, category)
}

// DELETE /api/categories?id=
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": true,
		"id":      id,
	})
}
