package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"librobuddy-backend/internal/config"
	"librobuddy-backend/internal/domains/user"
	"librobuddy-backend/internal/shared"
	"librobuddy-backend/pkg/cache"
	"librobuddy-backend/pkg/jwt"
	"librobuddy-backend/pkg/logger"
)

const failedLoginKeyPrefix = "auth:failed:"

type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	cache      cache.Cache // nil disables login throttling
	cfg        config.AuthConfig
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, c cache.Cache, cfg config.AuthConfig) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		cache:      c,
		cfg:        cfg,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Role:         shared.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Uniqueness is enforced by users_email_key; the repository maps the violation
	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user registered", map[string]interface{}{
		"user_id": newUser.ID,
	})

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := failedLoginKeyPrefix + req.Email
	if s.isThrottled(ctx, key) {
		return nil, user.ErrTooManyAttempts
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.recordFailedLogin(ctx, key)
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, key)
		return nil, user.ErrInvalidCredentials
	}

	s.clearFailedLogins(ctx, key)

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.AccessTTL().Seconds()),
		ExpiresAt:   expiresAt,
		User:        u.ToDTO(),
	}, nil
}

// ========================================
// PROFILE / ADMIN
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, userID uuid.UUID, req user.UpdateRoleRequest) error {
	if !req.Role.IsValid() {
		return user.ErrInvalidRole
	}

	if err := s.repo.UpdateRole(ctx, userID, req.Role); err != nil {
		return err
	}

	logger.Info("user role updated", map[string]interface{}{
		"user_id": userID,
		"role":    req.Role,
	})
	return nil
}

// ========================================
// FAILED LOGIN THROTTLING
// ========================================

// Cache failures never block a login; throttling is best effort.
func (s *userService) isThrottled(ctx context.Context, key string) bool {
	if s.cache == nil {
		return false
	}

	var count int64
	found, err := s.cache.Get(ctx, key, &count)
	if err != nil {
		logger.Error("read failed-login counter", err)
		return false
	}
	return found && count >= int64(s.cfg.MaxFailedLogins)
}

func (s *userService) recordFailedLogin(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}

	n, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Error("increment failed-login counter", err)
		return
	}
	// window starts at the first failure
	if n == 1 {
		if err := s.cache.Expire(ctx, key, s.cfg.FailedLoginWindow); err != nil {
			logger.Error("expire failed-login counter", err)
		}
	}
}

func (s *userService) clearFailedLogins(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Error("clear failed-login counter", err)
	}
}
