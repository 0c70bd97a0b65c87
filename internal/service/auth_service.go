package service

import (
	"context"
	"fmt"
	"time"

	"cost-tracker/internal/dto"
	"cost-tracker/pkg/auth"
	"cost-tracker/pkg/config"

	"go.uber.org/zap"
)

// TokenIssuer signs access tokens for an authenticated username.
type TokenIssuer interface {
	GenerateToken(username string) (string, error)
	GetTokenDuration() time.Duration
}

// AuthService checks the single configured admin credential.
type AuthService struct {
	admin  config.AdminConfig
	tokens TokenIssuer
	logger *zap.Logger
}

func NewAuthService(admin config.AdminConfig, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		admin:  admin,
		tokens: tokens,
		logger: logger,
	}
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !s.checkCredentials(req.Username, req.Password) {
		s.logger.Warn("Rejected login", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateToken(req.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("username", req.Username))

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.GetTokenDuration().Seconds()),
	}, nil
}

// checkCredentials compares both values even when the username is wrong so
// the timing does not reveal which one failed.
func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := auth.SecureCompare(username, s.admin.Username)

	var passOK bool
	if s.admin.PasswordHash != "" {
		passOK = auth.CheckPasswordHash(password, s.admin.PasswordHash)
	} else {
		passOK = auth.SecureCompare(password, s.admin.Password)
	}

	return userOK && passOK
}
