package handler

import (
	"net/http"

	"github.com/aydinozan/market-square/internal/response"
	"github.com/aydinozan/market-square/internal/service"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

type CreateCategoryRequest struct {
	Name          string   `json:"name" binding:"required,min=2,max=100"`
	Subcategories []string `json:"subcategories" binding:"required,min=1,dive,required"`
}

// Create stores a new category with its subcategory set.
// POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	category, err := h.categoryService.Create(req.Name, req.Subcategories)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "Category created successfully", category)
}

// List returns all categories. Public.
// GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"categories": categories})
}
