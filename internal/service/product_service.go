package service

import (
	"github.com/aydinozan/market-square/internal/models"
	"github.com/aydinozan/market-square/internal/repository"
	"github.com/aydinozan/market-square/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProductInput carries the fields a caller may set at creation time.
// The owner comes from the authenticated subject, never from the body.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Category    string
	Subcategory string
	Quantity    int
}

// UpdateProductInput carries the allow-listed mutable fields. Nil pointers
// mean "leave unchanged"; any other field present in a request is ignored.
// The owner reference is immutable and deliberately absent.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
	Subcategory *string
	Quantity    *int
}

type ProductService struct {
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
}

func NewProductService(productRepo *repository.ProductRepository, categoryRepo *repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *ProductService) Create(owner *models.User, input CreateProductInput) (*models.Product, error) {
	if err := s.validateCategory(input.Category, input.Subcategory); err != nil {
		logger.Log.Warn("Product category validation failed",
			zap.String("category", input.Category),
			zap.String("subcategory", input.Subcategory),
			zap.Error(err),
		)
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Quantity:    input.Quantity,
		UserID:      owner.ID,
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Log.Error("Failed to create product",
			zap.String("user_id", owner.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("user_id", owner.ID.String()),
	)
	return product, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) List(params repository.ListParams) ([]*models.Product, repository.Pagination, error) {
	params.Normalize()

	products, total, err := s.productRepo.List(params)
	if err != nil {
		logger.Log.Error("Failed to list products", zap.Error(err))
		return nil, repository.Pagination{}, err
	}

	return products, repository.NewPagination(params.Page, params.Limit, total), nil
}

// Update mutates a product after existence and ownership checks. Only the
// allow-listed fields are copied from the input.
func (s *ProductService) Update(caller *models.User, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !caller.CanManage(product.UserID) {
		logger.Log.Warn("Product update denied",
			zap.String("product_id", id.String()),
			zap.String("caller_id", caller.ID.String()),
		)
		return nil, ErrForbidden
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Subcategory != nil {
		product.Subcategory = *input.Subcategory
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}

	if input.Category != nil || input.Subcategory != nil {
		if err := s.validateCategory(product.Category, product.Subcategory); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(product); err != nil {
		logger.Log.Error("Failed to update product",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Product updated",
		zap.String("product_id", id.String()),
		zap.String("caller_id", caller.ID.String()),
	)
	return product, nil
}

// Delete removes a product after existence and ownership checks.
func (s *ProductService) Delete(caller *models.User, id uuid.UUID) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if !caller.CanManage(product.UserID) {
		logger.Log.Warn("Product delete denied",
			zap.String("product_id", id.String()),
			zap.String("caller_id", caller.ID.String()),
		)
		return ErrForbidden
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete product",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Product deleted",
		zap.String("product_id", id.String()),
		zap.String("caller_id", caller.ID.String()),
	)
	return nil
}

// validateCategory checks the cross-entity rule: the named category must
// exist and the subcategory must be one of its declared subcategories.
func (s *ProductService) validateCategory(category, subcategory string) error {
	if category == "" {
		return nil
	}

	cat, err := s.categoryRepo.GetByName(category)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCategoryNotFound
	}

	if subcategory != "" && !cat.HasSubcategory(subcategory) {
		return ErrInvalidSubcategory
	}

	return nil
}
