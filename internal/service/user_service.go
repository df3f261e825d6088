package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aydinozan/market-square/internal/auth"
	"github.com/aydinozan/market-square/internal/models"
	"github.com/aydinozan/market-square/internal/repository"
	"github.com/aydinozan/market-square/internal/utils"
	"github.com/aydinozan/market-square/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenPair bundles the access and refresh tokens returned by auth operations.
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileInput carries the allow-listed profile fields. Nil pointers
// mean "leave unchanged"; any other field present in a request is ignored.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

type UserService struct {
	userRepo   *repository.UserRepository
	codec      *utils.TokenCodec
	tokenStore *auth.TokenStore
	bcryptCost int
}

func NewUserService(userRepo *repository.UserRepository, codec *utils.TokenCodec, tokenStore *auth.TokenStore, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		codec:      codec,
		tokenStore: tokenStore,
		bcryptCost: bcryptCost,
	}
}

// NormalizeEmail lowercases and trims an email address before any lookup or
// write, so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(name, email, password string) (*models.User, *TokenPair, error) {
	start := time.Now()
	email = NormalizeEmail(email)

	logger.Log.Debug("Processing user registration",
		zap.String("email", email),
	)

	// Fast-path uniqueness check. The unique index on email remains the
	// authoritative guard against concurrent registrations.
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, nil, err
	}
	if existing != nil {
		logger.Log.Warn("Email already exists",
			zap.String("email", email),
		)
		return nil, nil, ErrEmailAlreadyExists
	}

	hashStart := time.Now()
	hashedPassword, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent registration.
			return nil, nil, ErrEmailAlreadyExists
		}
		logger.Log.Error("Failed to create user in database",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email),
		zap.Duration("hash_duration", time.Since(hashStart)),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, tokens, nil
}

func (s *UserService) Login(email, password string) (*models.User, *TokenPair, error) {
	start := time.Now()
	email = NormalizeEmail(email)

	logger.Log.Debug("Processing user login",
		zap.String("email", email),
	)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, nil, err
	}
	if user == nil {
		// Same error as a wrong password, so callers cannot probe for
		// registered addresses.
		logger.Log.Warn("Login failed: user not found",
			zap.String("email", email),
		)
		return nil, nil, ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("email", email),
			zap.String("user_id", user.ID.String()),
		)
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Log.Warn("Login failed: account deactivated",
			zap.String("user_id", user.ID.String()),
		)
		return nil, nil, ErrAccountDeactivated
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Save(user); err != nil {
		logger.Log.Error("Failed to record last login",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, tokens, nil
}

// Logout revokes the presented access token for its remaining lifetime.
func (s *UserService) Logout(ctx context.Context, claims *utils.Claims) error {
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := s.tokenStore.Blacklist(ctx, claims.ID, ttl); err != nil {
		logger.Log.Error("Failed to blacklist token",
			zap.String("user_id", claims.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("User logged out",
		zap.String("user_id", claims.UserID.String()),
	)
	return nil
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile copies only the allow-listed fields onto the user. The
// password hash is untouched, so it is never re-hashed here.
func (s *UserService) UpdateProfile(id uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if email != user.Email {
			existing, err := s.userRepo.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if err := s.userRepo.Save(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Error("Failed to update profile",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Profile updated",
		zap.String("user_id", id.String()),
	)
	return user, nil
}

// List returns a page of users with a pagination summary. Admin only; the
// role check happens in the middleware chain.
func (s *UserService) List(params repository.ListParams) ([]*models.User, repository.Pagination, error) {
	params.Normalize()

	users, total, err := s.userRepo.List(params)
	if err != nil {
		logger.Log.Error("Failed to list users", zap.Error(err))
		return nil, repository.Pagination{}, err
	}

	return users, repository.NewPagination(params.Page, params.Limit, total), nil
}

// Delete soft-deletes a user. Their products keep the owner reference.
func (s *UserService) Delete(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.userRepo.SoftDelete(id); err != nil {
		logger.Log.Error("Failed to delete user",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("User deleted",
		zap.String("user_id", id.String()),
	)
	return nil
}

func (s *UserService) issueTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := s.codec.GenerateAccessToken(user.ID)
	if err != nil {
		logger.Log.Error("Failed to generate access token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	refreshToken, err := s.codec.GenerateRefreshToken(user.ID)
	if err != nil {
		logger.Log.Error("Failed to generate refresh token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
