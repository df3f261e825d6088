package main

import (
	"log"
	"os"

	"github.com/aydinozan/market-square/internal/config"
	"github.com/aydinozan/market-square/internal/database"
	"github.com/aydinozan/market-square/internal/models"
	"github.com/aydinozan/market-square/internal/utils"
	"github.com/google/uuid"
)

// Starter categories created on first seed.
var defaultCategories = []models.Category{
	{Name: "electronics", Subcategories: models.StringList{"phones", "laptops", "tablets", "accessories"}},
	{Name: "clothing", Subcategories: models.StringList{"men", "women", "kids"}},
	{Name: "home", Subcategories: models.StringList{"furniture", "kitchen", "garden"}},
}

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	adminName := os.Getenv("ADMIN_NAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminName == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_NAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	// Check if admin with this email already exists
	var admin models.User
	result := db.Where("email = ?", adminEmail).First(&admin)

	if result.Error == nil {
		log.Println("Admin user already exists:", admin.Email)
	} else {
		passwordHash, err := utils.HashPassword(adminPassword, cfg.BcryptCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		admin = models.User{
			ID:           uuid.New(),
			Name:         adminName,
			Email:        adminEmail,
			PasswordHash: passwordHash,
			Role:         models.RoleAdmin,
			IsActive:     true,
		}

		if err := db.Create(&admin).Error; err != nil {
			log.Fatal("Failed to create admin:", err)
		}
		log.Println("Admin user created:", admin.Email)
	}

	for _, cat := range defaultCategories {
		var existing models.Category
		if err := db.Where("name = ?", cat.Name).First(&existing).Error; err == nil {
			log.Println("Category already exists:", cat.Name)
			continue
		}

		cat.ID = uuid.New()
		if err := db.Create(&cat).Error; err != nil {
			log.Fatal("Failed to create category:", err)
		}
		log.Println("Category created:", cat.Name)
	}

	log.Println("Seed completed")
}
