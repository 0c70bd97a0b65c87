package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestRecorder receives one observation per finished request.
type RequestRecorder interface {
	RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration)
}

// Metrics must wrap RequestLogger so it sees the rendered status of
// requests that ended in an error.
func Metrics(recorder RequestRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// Unmatched requests report the last middleware's pattern, so raw
		// paths never become label values.
		route := c.Route().Path
		recorder.RecordRequest(c.UserContext(), c.Method(), route, c.Response().StatusCode(), time.Since(start))

		return err
	}
}
