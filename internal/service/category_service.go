package service

import (
	"github.com/aydinozan/market-square/internal/models"
	"github.com/aydinozan/market-square/internal/repository"
	"github.com/aydinozan/market-square/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create stores a new category. Names are not unique; duplicates are allowed
// and name lookups resolve to the first match.
func (s *CategoryService) Create(name string, subcategories []string) (*models.Category, error) {
	if len(subcategories) == 0 {
		return nil, ErrEmptySubcategories
	}

	category := &models.Category{
		ID:            uuid.New(),
		Name:          name,
		Subcategories: subcategories,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		logger.Log.Error("Failed to create category",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", name),
	)
	return category, nil
}

func (s *CategoryService) List() ([]*models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		logger.Log.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}
	return categories, nil
}
