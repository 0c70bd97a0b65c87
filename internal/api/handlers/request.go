package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"cost-tracker/internal/service"
	"cost-tracker/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// requestError is a rejection decided before any service call.
type requestError struct {
	status  int
	code    string
	message string
}

func (e *requestError) Error() string {
	return e.message
}

var (
	errBodyRequired = &requestError{fiber.StatusBadRequest, response.CodeBadRequest, "Request body is required"}
	errNotJSON      = &requestError{fiber.StatusUnsupportedMediaType, response.CodeUnsupportedMediaType, "Content-Type must be application/json"}
	errInvalidJSON  = &requestError{fiber.StatusBadRequest, response.CodeBadRequest, "Invalid JSON"}
)

// parseJSONObject decodes the request body into a generic object, keeping
// numbers as json.Number.
func parseJSONObject(c *fiber.Ctx) (map[string]any, error) {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errBodyRequired
	}
	if !isJSONContentType(c.Get(fiber.HeaderContentType)) {
		return nil, errNotJSON
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil || data == nil {
		return nil, errInvalidJSON
	}
	if dec.More() {
		return nil, errInvalidJSON
	}
	return data, nil
}

func isJSONContentType(header string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(header, ";", 2)[0]))
	return mediaType == fiber.MIMEApplicationJSON || strings.HasSuffix(mediaType, "+json")
}

// writeError maps a handler or service error onto the error envelope.
// Anything unrecognized is an internal error.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var (
		reqErr *requestError
		valErr *service.ValidationError
		dimErr *service.DimensionNotFoundError
		dbErr  *service.StorageError
	)

	switch {
	case errors.As(err, &reqErr):
		return response.Error(c, reqErr.status, reqErr.code, reqErr.message, nil)
	case errors.As(err, &valErr):
		code := response.CodeValidation
		if valErr.Unknown {
			code = response.CodeBadRequest
		}
		return response.Error(c, fiber.StatusBadRequest, code, valErr.Message, valErr.Details)
	case errors.As(err, &dimErr):
		return response.Error(c, fiber.StatusBadRequest, response.CodeNotFound, dimErr.Error(), dimErr.Details())
	case errors.Is(err, service.ErrExpenseNotFound):
		return response.Error(c, fiber.StatusNotFound, response.CodeNotFound, "Expense not found", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.Error(c, fiber.StatusUnauthorized, response.CodeUnauthorized, "Invalid credentials", nil)
	case errors.As(err, &dbErr):
		logger.Error("Database error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return response.Error(c, fiber.StatusInternalServerError, response.CodeDBError, "Database error", err.Error())
	}

	logger.Error("Unhandled error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return response.Error(c, fiber.StatusInternalServerError, response.CodeInternal, "Internal server error", nil)
}
