package handlers

import (
	"context"

	"cost-tracker/internal/dto"
	"cost-tracker/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthHandler struct {
	authService AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Login as the administrator
// @Description Exchange the configured admin credentials for a bearer token
// @Tags auth
// @Accept json
// @Produce json,xml
// @Param request body dto.LoginRequest true "Login request"
// @Param format query string false "Response format (json or xml)"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 415 {object} response.ErrorEnvelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	data, err := parseJSONObject(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	// Non-string credentials can never match.
	username, _ := data["username"].(string)
	password, _ := data["password"].(string)

	resp, err := h.authService.Login(c.UserContext(), &dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return response.Send(c, fiber.StatusOK, resp)
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json,xml
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(c *fiber.Ctx) error {
	return response.Send(c, fiber.StatusOK, dto.HealthResponse{Status: "ok"})
}
