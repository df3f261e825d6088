package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// setupTestRateLimiter creates a rate limiter with miniredis for testing
func setupTestRateLimiter(t *testing.T, maxRequests int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	rl := NewRateLimiter(client, RateLimiterConfig{
		MaxRequests: maxRequests,
		Window:      window,
	})

	return rl, mr
}

func rateLimitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	return router
}

func doRequestFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsRequestsUnderLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, 5, 1*time.Minute)
	defer mr.Close()
	router := rateLimitedRouter(rl)

	for i := 0; i < 5; i++ {
		w := doRequestFrom(router, "192.168.1.1:12345")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}
}

func TestRateLimiter_BlocksRequestsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, 5, 1*time.Minute)
	defer mr.Close()
	router := rateLimitedRouter(rl)

	for i := 0; i < 5; i++ {
		w := doRequestFrom(router, "192.168.1.1:12345")
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}

	// 6th request should be rate limited
	w := doRequestFrom(router, "192.168.1.1:12345")
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "6th request should be rate limited")
	assert.NotEmpty(t, w.Header().Get("Retry-After"), "Should have Retry-After header")
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, 3, 1*time.Minute)
	defer mr.Close()
	router := rateLimitedRouter(rl)

	// IP 1: exhaust the quota
	for i := 0; i < 3; i++ {
		w := doRequestFrom(router, "192.168.1.1:12345")
		assert.Equal(t, http.StatusOK, w.Code, "IP1 request %d should succeed", i+1)
	}
	w := doRequestFrom(router, "192.168.1.1:12345")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// IP 2: still has full quota
	for i := 0; i < 3; i++ {
		w := doRequestFrom(router, "192.168.1.2:12345")
		assert.Equal(t, http.StatusOK, w.Code, "IP2 request %d should succeed", i+1)
	}
}

func TestRateLimiter_WindowExpiryResetsQuota(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, 2, 1*time.Minute)
	defer mr.Close()
	router := rateLimitedRouter(rl)

	for i := 0; i < 2; i++ {
		w := doRequestFrom(router, "192.168.1.1:12345")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w := doRequestFrom(router, "192.168.1.1:12345")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Advance miniredis clock past the window
	mr.FastForward(61 * time.Second)

	w = doRequestFrom(router, "192.168.1.1:12345")
	assert.Equal(t, http.StatusOK, w.Code, "Quota should reset after the window expires")
}

func TestRateLimiter_SeparateKeyPrefixesIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	global := NewRateLimiter(client, RateLimiterConfig{MaxRequests: 100, Window: time.Minute, KeyPrefix: "ratelimit:global"})
	authLimiter := NewRateLimiter(client, RateLimiterConfig{MaxRequests: 2, Window: time.Minute, KeyPrefix: "ratelimit:auth"})

	router := gin.New()
	router.Use(global.Middleware())
	router.POST("/login", authLimiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})
	router.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	// Exhaust the tighter auth quota
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "Auth routes hit the tighter limit")

	// Other routes still pass under the global limit
	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, mr := setupTestRateLimiter(t, 1, 1*time.Minute)
	router := rateLimitedRouter(rl)

	// Kill Redis; requests should pass rather than all be refused
	mr.Close()

	w := doRequestFrom(router, "192.168.1.1:12345")
	assert.Equal(t, http.StatusOK, w.Code, "Limiter should fail open when Redis is unavailable")
}
