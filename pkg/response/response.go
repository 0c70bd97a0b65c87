// Package response renders every API payload, successful or not, as JSON or
// XML depending on the format query parameter.
package response

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/clbanning/mxj/v2"
	"github.com/gofiber/fiber/v2"
)

const (
	MIMEApplicationXML = "application/xml; charset=utf-8"

	xmlRoot = "response"
)

// Error codes of the uniform error envelope.
const (
	CodeBadRequest           = "bad_request"
	CodeValidation           = "validation_error"
	CodeUnsupportedMediaType = "unsupported_media_type"
	CodeUnauthorized         = "unauthorized"
	CodeTokenExpired         = "token_expired"
	CodeInvalidToken         = "invalid_token"
	CodeNotFound             = "not_found"
	CodeMethodNotAllowed     = "method_not_allowed"
	CodeDBError              = "db_error"
	CodeInternal             = "internal_error"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// WantsXML reports whether ?format=xml (any case) was requested.
func WantsXML(c *fiber.Ctx) bool {
	return strings.EqualFold(strings.TrimSpace(c.Query("format")), "xml")
}

// Send writes payload with the given status. 204 always has an empty body.
func Send(c *fiber.Ctx, status int, payload any) error {
	if status == fiber.StatusNoContent {
		c.Status(status)
		c.Response().ResetBody()
		return nil
	}

	if WantsXML(c) {
		body, err := EncodeXML(payload)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, MIMEApplicationXML)
		return c.Status(status).Send(body)
	}

	return c.Status(status).JSON(payload)
}

func NoContent(c *fiber.Ctx) error {
	return Send(c, fiber.StatusNoContent, nil)
}

// Error writes the error envelope. details is omitted when nil.
func Error(c *fiber.Ctx, status int, code, message string, details any) error {
	return Send(c, status, ErrorEnvelope{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}

// EncodeXML renders payload under a <response> root. Payloads that are not
// JSON objects are wrapped as {"result": payload} first.
func EncodeXML(payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		raw, err = json.Marshal(map[string]json.RawMessage{"result": raw})
		if err != nil {
			return nil, fmt.Errorf("wrap payload: %w", err)
		}
	}

	mv, err := mxj.NewMapJson(raw)
	if err != nil {
		return nil, fmt.Errorf("convert payload: %w", err)
	}

	body, err := mv.Xml(xmlRoot)
	if err != nil {
		return nil, fmt.Errorf("render xml: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}
