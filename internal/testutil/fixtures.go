package testutil

import (
	"github.com/aydinozan/market-square/internal/models"
	"github.com/aydinozan/market-square/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreateTestUser builds a user with a hashed password. MinCost keeps the
// test suites fast.
func CreateTestUser(name, email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}, nil
}

// DefaultTestUser returns a default test user (regular user)
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("Test User", "test@example.com", "Test123456", models.RoleUser)
}

// DefaultAdminUser returns a default admin user
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("Admin User", "admin@example.com", "Admin123456", models.RoleAdmin)
}

// CreateTestCategory builds a category with the given subcategory set.
func CreateTestCategory(name string, subcategories ...string) *models.Category {
	return &models.Category{
		ID:            uuid.New(),
		Name:          name,
		Subcategories: subcategories,
	}
}

// CreateTestProduct builds a product owned by ownerID.
func CreateTestProduct(ownerID uuid.UUID, name, category, subcategory string, price float64) *models.Product {
	return &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "test product",
		Price:       price,
		ImageURL:    "http://example.com/image.png",
		Category:    category,
		Subcategory: subcategory,
		Quantity:    1,
		UserID:      ownerID,
	}
}
