package router

import (
	"net/http"

	"github.com/aydinozan/market-square/internal/auth"
	"github.com/aydinozan/market-square/internal/config"
	"github.com/aydinozan/market-square/internal/handler"
	"github.com/aydinozan/market-square/internal/middleware"
	"github.com/aydinozan/market-square/internal/models"
	"github.com/aydinozan/market-square/internal/repository"
	"github.com/aydinozan/market-square/internal/response"
	"github.com/aydinozan/market-square/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Config     *config.Config
	Codec      *utils.TokenCodec
	UserRepo   *repository.UserRepository
	TokenStore *auth.TokenStore

	Limiter     *middleware.RateLimiter // nil disables rate limiting (tests)
	AuthLimiter *middleware.RateLimiter // tighter limit for register/login

	UserHandler     *handler.UserHandler
	ProductHandler  *handler.ProductHandler
	CategoryHandler *handler.CategoryHandler
}

// New wires the full route table: method+path -> middleware chain -> handler.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	isProduction := deps.Config.Environment == "production"
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.HSTSMiddleware(isProduction))
	r.Use(cors.Default())

	if deps.Limiter != nil {
		r.Use(deps.Limiter.Middleware())
	}

	requireAuth := middleware.RequireAuth(deps.Codec, deps.UserRepo, deps.TokenStore)
	optionalAuth := middleware.OptionalAuth(deps.Codec, deps.UserRepo, deps.TokenStore)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)

	authLimit := func(c *gin.Context) { c.Next() }
	if deps.AuthLimiter != nil {
		authLimit = deps.AuthLimiter.Middleware()
	}

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, http.StatusOK, "ok", nil)
	})

	users := r.Group("/users")
	{
		users.POST("/register", authLimit, deps.UserHandler.Register)
		users.POST("/login", authLimit, deps.UserHandler.Login)
		users.POST("/logout", requireAuth, deps.UserHandler.Logout)
		users.GET("/profile", requireAuth, deps.UserHandler.GetProfile)
		users.PUT("/profile", requireAuth, deps.UserHandler.UpdateProfile)
		users.GET("", requireAuth, requireAdmin, deps.UserHandler.List)
		users.DELETE("/:id", requireAuth, requireAdmin, deps.UserHandler.Delete)
	}

	products := r.Group("/products")
	{
		products.GET("", optionalAuth, deps.ProductHandler.List)
		products.GET("/:id", optionalAuth, deps.ProductHandler.Get)
		products.POST("", requireAuth, deps.ProductHandler.Create)
		products.PUT("/:id", requireAuth, deps.ProductHandler.Update)
		products.DELETE("/:id", requireAuth, deps.ProductHandler.Delete)
	}

	categories := r.Group("/categories")
	{
		// Any authenticated caller may create; tightening to admin-only is an
		// open product decision.
		categories.POST("", requireAuth, deps.CategoryHandler.Create)
		categories.GET("", deps.CategoryHandler.List)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found")
	})

	return r
}
