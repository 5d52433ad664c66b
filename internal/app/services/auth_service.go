package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/pkg/apperrors"
	"github.com/jaeho/gongu/internal/pkg/auth"
	"github.com/jaeho/gongu/internal/pkg/logger"
	"github.com/jaeho/gongu/internal/pkg/validation"
)

// UserStore is the user persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenStore is the refresh token persistence surface the auth service needs.
type TokenStore interface {
	Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// AuditStore appends to the user audit log.
type AuditStore interface {
	Append(ctx context.Context, log *models.UserLog) (int64, error)
}

// AuthService implements registration, login and token lifecycle
type AuthService struct {
	users  UserStore
	tokens TokenStore
	audit  AuditStore
	jwt    *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenStore, audit AuditStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		audit:  audit,
		jwt:    jwt,
	}
}

// Register creates a new account and returns the user with an initial token pair
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, ip string) (*models.User, *dto.TokenResponse, error) {
	if !validation.IsValidUsername(req.Username) {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"Username must be 3-30 characters of lowercase letters, digits, dots or underscores")
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid email address")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("Password must be at least %d characters", validation.PasswordMinLength))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUsernameAlreadyExists):
			return nil, nil, apperrors.ErrUsernameAlreadyExists
		case errors.Is(err, repositories.ErrEmailAlreadyExists):
			return nil, nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, nil, err
	}
	user.ID = id

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log(ctx, &user.ID, models.LogLevelInfo, ip, "register")
	logger.Info().Int64("userID", id).Str("username", user.Username).Msg("User registered")

	return user, tokens, nil
}

// Login authenticates a user and returns a fresh token pair
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, ip string) (*models.User, *dto.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.log(ctx, nil, models.LogLevelWarning, ip, fmt.Sprintf("login failed for %q", req.Username))
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.log(ctx, &user.ID, models.LogLevelWarning, ip, "login failed")
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.log(ctx, &user.ID, models.LogLevelInfo, ip, "login")

	return user, tokens, nil
}

// Refresh rotates a refresh token and issues a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, err
	}

	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	// Rotation: the presented token is single-use
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token of the user
func (s *AuthService) Logout(ctx context.Context, userID int64, ip string) error {
	if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	s.log(ctx, &userID, models.LogLevelInfo, ip, "logout")

	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokens.Save(ctx, user.ID, refreshToken, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}

// log appends an account audit entry. Audit failures never fail the
// operation that triggered them.
func (s *AuthService) log(ctx context.Context, userID *int64, level int, ip, text string) {
	if ip == "" {
		ip = models.UnknownIP
	}
	entry := &models.UserLog{
		UserID: userID,
		Level:  level,
		IP:     ip,
		Group:  models.LogGroupAccount,
		Text:   text,
	}
	if _, err := s.audit.Append(ctx, entry); err != nil {
		logger.Warn().Err(err).Msg("Failed to append audit log entry")
	}
}
