package repository

import (
	"errors"

	"github.com/aydinozan/market-square/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("id = ?", id).First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &product, nil
}

// Save persists all fields of an existing product.
func (r *ProductRepository) Save(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Product{}, "id = ?", id).Error
}

// List returns a page of products plus the total matching count. Search matches
// the product name case-insensitively; category/subcategory are exact filters.
func (r *ProductRepository) List(params ListParams) ([]*models.Product, int64, error) {
	params.Normalize()

	query := r.db.Model(&models.Product{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", pattern)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Subcategory != "" {
		query = query.Where("subcategory = ?", params.Subcategory)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*models.Product
	err := query.
		Order(productOrderClause(params.Sort)).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// productOrderClause maps a client sort key to a safe ORDER BY clause.
// Unknown keys fall back to newest-first.
func productOrderClause(sort string) string {
	switch sort {
	case "oldest":
		return "created_at ASC"
	case "name":
		return "name ASC"
	case "price_asc":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	default:
		return "created_at DESC"
	}
}
