package handler

import (
	"net/http"

	"github.com/aydinozan/market-square/internal/middleware"
	"github.com/aydinozan/market-square/internal/response"
	"github.com/aydinozan/market-square/internal/service"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"omitempty,max=500"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url" binding:"required,url"`
	Category    string  `json:"category" binding:"omitempty,max=100"`
	Subcategory string  `json:"subcategory" binding:"omitempty,max=100"`
	Quantity    int     `json:"quantity" binding:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,url"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Subcategory *string  `json:"subcategory" binding:"omitempty,max=100"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
}

// List returns a page of products with optional search and filters. Public.
// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	params := listParamsFromQuery(c)

	products, pagination, err := h.productService.List(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

// Get returns a single product. Public.
// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", product)
}

// Create stores a new product owned by the authenticated subject.
// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	product, err := h.productService.Create(user, service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "Product created successfully", product)
}

// Update mutates the allow-listed fields of a product. Owner or admin only.
// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	product, err := h.productService.Update(user, id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Product updated successfully", product)
}

// Delete removes a product. Owner or admin only.
// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(user, id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Product deleted successfully", nil)
}
