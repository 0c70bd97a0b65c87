package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cost-tracker/internal/dto"
	"cost-tracker/pkg/auth"
	"cost-tracker/pkg/config"

	"go.uber.org/zap"
)

func TestAuthServiceLogin(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	tests := []struct {
		name     string
		admin    config.AdminConfig
		username string
		password string
		wantErr  bool
	}{
		{"plain ok", config.AdminConfig{Username: "admin", Password: "admin"}, "admin", "admin", false},
		{"plain wrong password", config.AdminConfig{Username: "admin", Password: "admin"}, "admin", "nope", true},
		{"wrong username", config.AdminConfig{Username: "admin", Password: "admin"}, "root", "admin", true},
		{"empty", config.AdminConfig{Username: "admin", Password: "admin"}, "", "", true},
		{"hash ok", config.AdminConfig{Username: "admin", Password: "ignored", PasswordHash: hash}, "admin", "s3cret", false},
		{"hash takes precedence", config.AdminConfig{Username: "admin", Password: "ignored", PasswordHash: hash}, "admin", "ignored", true},
	}

	jwtManager := auth.NewJWTManager("test-secret", "HS256", time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.admin, jwtManager, zap.NewNop())
			resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: tt.username, Password: tt.password})

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Errorf("err = %v, want ErrInvalidCredentials", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.TokenType != "Bearer" || resp.ExpiresIn != 3600 {
				t.Errorf("resp = %+v", resp)
			}
			claims, err := jwtManager.ValidateToken(resp.AccessToken)
			if err != nil {
				t.Fatalf("issued token does not validate: %v", err)
			}
			if claims.Subject != tt.username {
				t.Errorf("subject = %q, want %q", claims.Subject, tt.username)
			}
		})
	}
}
