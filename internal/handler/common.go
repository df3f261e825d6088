package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aydinozan/market-square/internal/repository"
	"github.com/aydinozan/market-square/internal/response"
	"github.com/aydinozan/market-square/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondServiceError maps a typed service failure onto an HTTP status and a
// client-facing message. Unrecognized errors become a generic 500 so internal
// details never leak.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		// Same message whether the email or the password was wrong.
		response.Error(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrAccountDeactivated):
		response.Error(c, http.StatusUnauthorized, "Account deactivated")
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, http.StatusForbidden, "You do not have permission to perform this action")
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, service.ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "Email already in use")
	case errors.Is(err, service.ErrCategoryNotFound):
		response.Error(c, http.StatusBadRequest, "Category does not exist")
	case errors.Is(err, service.ErrInvalidSubcategory):
		response.Error(c, http.StatusBadRequest, "Subcategory does not belong to the category")
	case errors.Is(err, service.ErrEmptySubcategories):
		response.Error(c, http.StatusBadRequest, "Subcategories must not be empty")
	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parseIDParam reads a :id path parameter as a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid id format")
		return uuid.Nil, false
	}
	return id, true
}

// listParamsFromQuery reads pagination/search/filter query parameters.
func listParamsFromQuery(c *gin.Context) repository.ListParams {
	return repository.ListParams{
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", 10),
		Sort:        c.Query("sort"),
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
	}
}

func queryInt(c *gin.Context, key string, defaultVal int) int {
	valStr := c.Query(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
