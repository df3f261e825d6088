package main

import (
	"log"

	"github.com/aydinozan/market-square/internal/auth"
	"github.com/aydinozan/market-square/internal/config"
	"github.com/aydinozan/market-square/internal/database"
	"github.com/aydinozan/market-square/internal/handler"
	"github.com/aydinozan/market-square/internal/middleware"
	"github.com/aydinozan/market-square/internal/repository"
	"github.com/aydinozan/market-square/internal/router"
	"github.com/aydinozan/market-square/internal/service"
	"github.com/aydinozan/market-square/internal/utils"
	"github.com/aydinozan/market-square/pkg/logger"
)

func main() {
	cfg := config.Load()

	isDevelopment := cfg.Environment != "production"
	if err := logger.Init(isDevelopment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs the rate limiter and the logout token blacklist
	redisClient, err := auth.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}
	defer redisClient.Close()

	tokenStore := auth.NewTokenStore(redisClient)
	codec := utils.NewTokenCodec(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Services
	userService := service.NewUserService(userRepo, codec, tokenStore, cfg.BcryptCost)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)

	// Rate limiters: a global ceiling plus a tighter one for auth routes
	limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		KeyPrefix:   "ratelimit:global",
	})
	authLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.AuthRateLimitMax,
		Window:      cfg.AuthRateLimitWindow,
		KeyPrefix:   "ratelimit:auth",
	})

	r := router.New(router.Deps{
		Config:          cfg,
		Codec:           codec,
		UserRepo:        userRepo,
		TokenStore:      tokenStore,
		Limiter:         limiter,
		AuthLimiter:     authLimiter,
		UserHandler:     handler.NewUserHandler(userService),
		ProductHandler:  handler.NewProductHandler(productService),
		CategoryHandler: handler.NewCategoryHandler(categoryService),
	})

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := r.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
