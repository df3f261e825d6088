package handler

import (
	"net/http"

	"github.com/aydinozan/market-square/internal/middleware"
	"github.com/aydinozan/market-square/internal/response"
	"github.com/aydinozan/market-square/internal/service"
	"github.com/aydinozan/market-square/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// Register creates an account and returns the user with a fresh token pair.
// POST /users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		response.ValidationError(c, err)
		return
	}

	user, tokens, err := h.userService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":          user,
		"token":         tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Login authenticates credentials and returns a fresh token pair.
// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Login request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		response.ValidationError(c, err)
		return
	}

	user, tokens, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Login successful", gin.H{
		"user":          user,
		"token":         tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Logout revokes the presented token.
// POST /users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.userService.Logout(c.Request.Context(), claims); err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Logged out successfully", nil)
}

// GetProfile returns the authenticated subject.
// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"user": user})
}

// UpdateProfile mutates the allow-listed profile fields (name, email).
// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	updated, err := h.userService.UpdateProfile(user.ID, service.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Profile updated successfully", gin.H{"user": updated})
}

// List returns a page of users. Admin only.
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	params := listParamsFromQuery(c)

	users, pagination, err := h.userService.List(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

// Delete soft-deletes a user. Admin only.
// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	admin, _ := middleware.CurrentUser(c)
	logger.Log.Info("Admin deleting user",
		zap.String("admin_id", admin.ID.String()),
		zap.String("target_user_id", id.String()),
	)

	if err := h.userService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "User deleted successfully", nil)
}
