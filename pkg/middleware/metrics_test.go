package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type observation struct {
	method string
	route  string
	status int
}

type fakeRecorder struct {
	seen []observation
}

func (f *fakeRecorder) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	f.seen = append(f.seen, observation{method, route, status})
}

func TestMetricsRecordsRouteAndRenderedStatus(t *testing.T) {
	recorder := &fakeRecorder{}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusTeapot).SendString(err.Error())
		},
	})
	app.Use(Metrics(recorder))
	app.Use(RequestLogger(zap.NewNop()))
	app.Get("/items/:id<int>", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.ErrBadGateway
	})

	for _, path := range []string{"/items/7", "/boom"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("app.Test failed: %v", err)
		}
		resp.Body.Close()
	}

	want := []observation{
		{"GET", "/items/:id<int>", fiber.StatusOK},
		{"GET", "/boom", fiber.StatusTeapot},
	}
	if len(recorder.seen) != len(want) {
		t.Fatalf("seen = %v, want %v", recorder.seen, want)
	}
	for i := range want {
		if recorder.seen[i] != want[i] {
			t.Errorf("observation %d = %+v, want %+v", i, recorder.seen[i], want[i])
		}
	}
}
