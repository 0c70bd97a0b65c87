package middleware

import (
	"errors"
	"strings"

	"cost-tracker/pkg/auth"
	"cost-tracker/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// LocalUsername is the fiber.Ctx locals key holding the token subject.
const LocalUsername = "username"

func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			logger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return response.Error(c, fiber.StatusUnauthorized, response.CodeUnauthorized, "Missing Bearer token", nil)
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			return response.Error(c, fiber.StatusUnauthorized, response.CodeUnauthorized, "Missing Bearer token", nil)
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Rejected token", zap.String("path", c.Path()), zap.Error(err))
			if errors.Is(err, auth.ErrTokenExpired) {
				return response.Error(c, fiber.StatusUnauthorized, response.CodeTokenExpired, "Token expired", nil)
			}
			return response.Error(c, fiber.StatusUnauthorized, response.CodeInvalidToken, "Invalid token", nil)
		}

		c.Locals(LocalUsername, claims.Subject)

		return c.Next()
	}
}
