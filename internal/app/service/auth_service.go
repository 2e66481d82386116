package service

import (
	"context"
	"errors"
	"time"

	"github.com/hmlee/threadline-backend/config"
	"github.com/hmlee/threadline-backend/internal/app/model"
	"github.com/hmlee/threadline-backend/internal/app/repository"
	"github.com/hmlee/threadline-backend/pkg/logger"
	"github.com/hmlee/threadline-backend/pkg/redis"
	"github.com/hmlee/threadline-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Register(username, email, password string) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*util.TokenPair, *model.User, error)
	Logout(ctx context.Context, tokenString string) error
	GetUserByID(userID uint) (*model.User, error)
	ListUsers() ([]model.User, error)
	CountUsers() (int64, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tokenStore *redis.TokenStore
	jwtConfig  *config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, tokenStore *redis.TokenStore, jwtConfig *config.JWTConfig) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		jwtConfig:  jwtConfig,
	}
}

func (s *authService) Register(username, email, password string) (*model.User, *util.TokenPair, error) {
	logger.Debug("Registering new user", map[string]interface{}{
		"username": username,
		"email":    email,
	})

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		logger.Warn("Registration rejected, username taken", map[string]interface{}{
			"username": username,
		})
		return nil, nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		logger.Warn("Registration rejected, email taken", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	passwordHash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return nil, nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtConfig.Secret,
		s.jwtConfig.AccessTokenExpiry,
		s.jwtConfig.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*util.TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password, so the response does not
			// reveal which accounts exist.
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed, wrong password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtConfig.Secret,
		s.jwtConfig.AccessTokenExpiry,
		s.jwtConfig.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return tokens, user, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
// An already expired token is treated as a successful logout.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := util.ValidateToken(tokenString, s.jwtConfig.Secret)
	if err != nil {
		if errors.Is(err, util.ErrExpiredToken) {
			return nil
		}
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.tokenStore.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Error("Failed to revoke token", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return err
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func (s *authService) GetUserByID(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *authService) CountUsers() (int64, error) {
	return s.userRepo.CountAll()
}
