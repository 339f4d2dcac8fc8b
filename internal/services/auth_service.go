package services

import (
	"context"

	"github.com/technotes/backend/internal/models"
	"github.com/technotes/backend/internal/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authService implements login and token refresh against the users collection
type authService struct {
	users  UserRepository
	tokens *token.Generator
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepository, tokens *token.Generator, logger *zap.Logger) *authService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login validates credentials and returns an access token and a refresh token.
// Unknown usernames, inactive users, and wrong passwords are indistinguishable
// to the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	if req.Username == "" || req.Password == "" {
		return "", "", validationError("All fields are required.")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return "", "", err
	}
	if user == nil || !user.Active {
		return "", "", unauthorizedError("Unauthorized")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", "", unauthorizedError("Unauthorized")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Username, user.Roles)
	if err != nil {
		s.logger.Error("failed to generate access token", zap.Error(err))
		return "", "", err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.Username)
	if err != nil {
		s.logger.Error("failed to generate refresh token", zap.Error(err))
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Refresh validates a refresh token and issues a new access token for the user
// it names, provided that user still exists and is active
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	username, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", forbiddenError("Forbidden")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil || !user.Active {
		return "", unauthorizedError("Unauthorized")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Username, user.Roles)
	if err != nil {
		s.logger.Error("failed to generate access token", zap.Error(err))
		return "", err
	}

	return accessToken, nil
}
