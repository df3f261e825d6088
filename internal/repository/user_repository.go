package repository

import (
	"errors"

	"github.com/aydinozan/market-square/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	// GORM automatically excludes soft-deleted users (deleted_at IS NOT NULL)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// Save persists all fields of an existing user.
func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// List returns a page of users plus the total matching count. Search matches
// name or email substrings case-insensitively.
func (r *UserRepository) List(params ListParams) ([]*models.User, int64, error) {
	params.Normalize()

	query := r.db.Model(&models.User{})
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Users only sort on creation time and name
	order := "created_at DESC"
	switch params.Sort {
	case "oldest":
		order = "created_at ASC"
	case "name":
		order = "name ASC"
	}

	var users []*models.User
	err := query.
		Order(order).
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// SoftDelete marks a user as deleted (sets DeletedAt).
func (r *UserRepository) SoftDelete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}
