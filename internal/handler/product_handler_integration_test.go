package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aydinozan/market-square/internal/auth"
	"github.com/aydinozan/market-square/internal/config"
	"github.com/aydinozan/market-square/internal/handler"
	"github.com/aydinozan/market-square/internal/repository"
	"github.com/aydinozan/market-square/internal/router"
	"github.com/aydinozan/market-square/internal/service"
	"github.com/aydinozan/market-square/internal/testutil"
	"github.com/aydinozan/market-square/internal/utils"
	"github.com/aydinozan/market-square/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// ProductHandlerIntegrationTestSuite defines test suite
type ProductHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB    *testutil.TestDatabase
	testRedis *testutil.TestRedis
	router    *gin.Engine
}

// SetupSuite runs before all tests
func (s *ProductHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())
	s.testRedis = testutil.SetupTestRedis(s.T())

	codec := utils.NewTokenCodec("test-secret-key", "market-square", "market-square-api", 1*time.Hour, 24*time.Hour)
	tokenStore := auth.NewTokenStore(s.testRedis.Client)

	userRepo := repository.NewUserRepository(s.testDB.DB)
	productRepo := repository.NewProductRepository(s.testDB.DB)
	categoryRepo := repository.NewCategoryRepository(s.testDB.DB)

	userService := service.NewUserService(userRepo, codec, tokenStore, bcrypt.MinCost)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)

	s.router = router.New(router.Deps{
		Config:          &config.Config{Environment: "test"},
		Codec:           codec,
		UserRepo:        userRepo,
		TokenStore:      tokenStore,
		UserHandler:     handler.NewUserHandler(userService),
		ProductHandler:  handler.NewProductHandler(productService),
		CategoryHandler: handler.NewCategoryHandler(categoryService),
	})
}

// TearDownSuite runs after all tests
func (s *ProductHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
	s.testRedis.Teardown(s.T())
}

// SetupTest runs before each test (clean database)
func (s *ProductHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
	s.testRedis.Server.FlushAll()
}

func (s *ProductHandlerIntegrationTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin registers a user and returns a usable bearer token.
func (s *ProductHandlerIntegrationTestSuite) registerAndLogin(name, email string) string {
	w := s.do(http.MethodPost, "/users/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "Password123",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/users/login", "", map[string]string{
		"email":    email,
		"password": "Password123",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := parseEnvelope(s.T(), w)
	return resp["data"].(map[string]interface{})["token"].(string)
}

func (s *ProductHandlerIntegrationTestSuite) createElectronicsCategory(token string) {
	w := s.do(http.MethodPost, "/categories", token, map[string]interface{}{
		"name":          "electronics",
		"subcategories": []string{"phones", "laptops"},
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
}

// TestEndToEndFlow covers the full register -> reject anonymous write ->
// login -> create product journey.
func (s *ProductHandlerIntegrationTestSuite) TestEndToEndFlow() {
	// Register
	w := s.do(http.MethodPost, "/users/register", "", map[string]string{
		"name":     "John Doe",
		"email":    "john@example.com",
		"password": "Password123",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	resp := parseEnvelope(s.T(), w)
	assert.NotEmpty(s.T(), resp["data"].(map[string]interface{})["token"])

	// Anonymous product creation is rejected
	w = s.do(http.MethodPost, "/products", "", map[string]interface{}{
		"name": "iPhone", "price": 999, "image_url": "http://x/y.png",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	resp = parseEnvelope(s.T(), w)
	assert.Equal(s.T(), "Access denied. No token provided.", resp["message"])

	// Login and create the product under a pre-existing category
	w = s.do(http.MethodPost, "/users/login", "", map[string]string{
		"email":    "john@example.com",
		"password": "Password123",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	token := parseEnvelope(s.T(), w)["data"].(map[string]interface{})["token"].(string)

	s.createElectronicsCategory(token)

	w = s.do(http.MethodPost, "/products", token, map[string]interface{}{
		"name":        "iPhone",
		"price":       999,
		"image_url":   "http://x/y.png",
		"description": "d",
		"category":    "electronics",
		"subcategory": "phones",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	product := parseEnvelope(s.T(), w)["data"].(map[string]interface{})
	assert.Equal(s.T(), "electronics", product["category"])
	assert.NotEmpty(s.T(), product["id"])
}

func (s *ProductHandlerIntegrationTestSuite) TestCreateWithBadSubcategory() {
	token := s.registerAndLogin("John Doe", "john@example.com")
	s.createElectronicsCategory(token)

	w := s.do(http.MethodPost, "/products", token, map[string]interface{}{
		"name":        "iPhone",
		"price":       999,
		"image_url":   "http://x/y.png",
		"category":    "electronics",
		"subcategory": "bicycles",
	})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	// No write happened
	w = s.do(http.MethodGet, "/products", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	data := parseEnvelope(s.T(), w)["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(s.T(), float64(0), pagination["total_count"])
}

func (s *ProductHandlerIntegrationTestSuite) TestPublicReadsWithoutToken() {
	token := s.registerAndLogin("John Doe", "john@example.com")
	s.createElectronicsCategory(token)

	w := s.do(http.MethodPost, "/products", token, map[string]interface{}{
		"name": "iPhone", "price": 999, "image_url": "http://x/y.png",
		"category": "electronics", "subcategory": "phones",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	productID := parseEnvelope(s.T(), w)["data"].(map[string]interface{})["id"].(string)

	// Listing and fetching need no token
	w = s.do(http.MethodGet, "/products", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	data := parseEnvelope(s.T(), w)["data"].(map[string]interface{})
	products := data["products"].([]interface{})
	assert.Len(s.T(), products, 1)

	w = s.do(http.MethodGet, "/products/"+productID, "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	// Categories list is public too
	w = s.do(http.MethodGet, "/categories", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *ProductHandlerIntegrationTestSuite) TestUpdateByNonOwnerForbidden() {
	ownerToken := s.registerAndLogin("Owner", "owner@example.com")
	s.createElectronicsCategory(ownerToken)

	w := s.do(http.MethodPost, "/products", ownerToken, map[string]interface{}{
		"name": "iPhone", "price": 999, "image_url": "http://x/y.png",
	})
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	productID := parseEnvelope(s.T(), w)["data"].(map[string]interface{})["id"].(string)

	otherToken := s.registerAndLogin("Other", "other@example.com")

	w = s.do(http.MethodPut, "/products/"+productID, otherToken, map[string]interface{}{
		"price": 1,
	})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, "/products/"+productID, otherToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	// Record unchanged
	w = s.do(http.MethodGet, "/products/"+productID, "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	product := parseEnvelope(s.T(), w)["data"].(map[string]interface{})
	assert.Equal(s.T(), float64(999), product["price"])
}

func (s *ProductHandlerIntegrationTestSuite) TestPaginationSummary() {
	token := s.registerAndLogin("John Doe", "john@example.com")
	s.createElectronicsCategory(token)

	for i := 0; i < 12; i++ {
		w := s.do(http.MethodPost, "/products", token, map[string]interface{}{
			"name": "Widget", "price": 10, "image_url": "http://x/y.png",
			"category": "electronics", "subcategory": "phones",
		})
		assert.Equal(s.T(), http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodGet, "/products?page=1&limit=10", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	data := parseEnvelope(s.T(), w)["data"].(map[string]interface{})
	assert.Len(s.T(), data["products"].([]interface{}), 10)

	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(s.T(), float64(2), pagination["total_pages"])
	assert.Equal(s.T(), float64(12), pagination["total_count"])
	assert.Equal(s.T(), true, pagination["has_next"])
	assert.Equal(s.T(), false, pagination["has_prev"])
}

func (s *ProductHandlerIntegrationTestSuite) TestGetUnknownProduct() {
	w := s.do(http.MethodGet, "/products/1b4e28ba-2fa1-11d2-883f-0016d3cca427", "", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/products/not-a-uuid", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func TestProductHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerIntegrationTestSuite))
}
