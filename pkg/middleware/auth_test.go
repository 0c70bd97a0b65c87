package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"cost-tracker/pkg/auth"
	"cost-tracker/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", "HS256", time.Hour)
	validToken, _ := jwtManager.GenerateToken("admin")

	expiredManager := auth.NewJWTManager("test-secret", "HS256", -time.Minute)
	expiredToken, _ := expiredManager.GenerateToken("admin")

	foreignToken, _ := auth.NewJWTManager("another-secret", "HS256", time.Hour).GenerateToken("admin")

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedCode   string
	}{
		{"valid token", "Bearer " + validToken, fiber.StatusOK, ""},
		{"no header", "", fiber.StatusUnauthorized, response.CodeUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized, response.CodeUnauthorized},
		{"empty bearer", "Bearer    ", fiber.StatusUnauthorized, response.CodeUnauthorized},
		{"expired", "Bearer " + expiredToken, fiber.StatusUnauthorized, response.CodeTokenExpired},
		{"garbage", "Bearer invalid", fiber.StatusUnauthorized, response.CodeInvalidToken},
		{"foreign signature", "Bearer " + foreignToken, fiber.StatusUnauthorized, response.CodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthMiddleware(jwtManager, zap.NewNop()))
			app.Get("/", func(c *fiber.Ctx) error {
				if c.Locals(LocalUsername) != "admin" {
					t.Errorf("username local = %v, want admin", c.Locals(LocalUsername))
				}
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}
			if tt.expectedCode == "" {
				return
			}

			var env response.ErrorEnvelope
			if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if env.Error.Code != tt.expectedCode {
				t.Errorf("code = %q, want %q", env.Error.Code, tt.expectedCode)
			}
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if got := resp.Header.Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/missing", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("expected a generated request id")
	}
}
