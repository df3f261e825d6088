package service

import "errors"

// Typed failures the handler layer maps onto HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrInvalidSubcategory = errors.New("subcategory does not belong to the category")
	ErrEmptySubcategories = errors.New("subcategories must not be empty")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
)
