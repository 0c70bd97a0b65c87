package api

import (
	"errors"
	"os"
	"path/filepath"

	"cost-tracker/docs"
	"cost-tracker/internal/api/handlers"
	"cost-tracker/pkg/auth"
	"cost-tracker/pkg/config"
	"cost-tracker/pkg/middleware"
	"cost-tracker/pkg/response"
	"cost-tracker/pkg/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	expenseHandler *handlers.ExpenseHandler,
	jwtManager *auth.JWTManager,
	metrics *telemetry.Metrics,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cost-tracker",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler(appLogger),
	})

	// Middleware
	app.Use(middleware.Metrics(metrics))
	app.Use(middleware.RequestLogger(appLogger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	webStaticPath := findWebStaticPath(cfg.Web.StaticDir, appLogger)
	if webStaticPath != "" {
		appLogger.Info("Serving static files", zap.String("path", webStaticPath))
		app.Static("/static", webStaticPath)
	} else {
		appLogger.Warn("Web static directory not found, static files will not be served")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		if webStaticPath == "" {
			return fiber.ErrNotFound
		}
		return c.SendFile(filepath.Join(webStaticPath, "index.html"))
	})

	app.Post("/auth/login", authHandler.Login)

	// Protected routes
	protected := app.Group("/api", middleware.AuthMiddleware(jwtManager, appLogger))

	expenses := protected.Group("/expenses")
	expenses.Get("", expenseHandler.ListExpenses)
	expenses.Post("", expenseHandler.CreateExpense)
	expenses.Get("/search", expenseHandler.SearchExpenses)
	expenses.Get("/:id<int>", expenseHandler.GetExpense)
	expenses.Put("/:id<int>", expenseHandler.UpdateExpense)
	expenses.Delete("/:id<int>", expenseHandler.DeleteExpense)

	return app
}

// errorHandler renders fiber's routing failures and recovered panics
// through the error envelope.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch {
			case fe.Code == fiber.StatusNotFound:
				return response.Error(c, fe.Code, response.CodeNotFound, "Not found", nil)
			case fe.Code == fiber.StatusMethodNotAllowed:
				return response.Error(c, fe.Code, response.CodeMethodNotAllowed, "Method not allowed", nil)
			case fe.Code < fiber.StatusInternalServerError:
				return response.Error(c, fe.Code, response.CodeBadRequest, fe.Message, nil)
			}
		}

		logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return response.Error(c, fiber.StatusInternalServerError, response.CodeInternal, "Internal server error", nil)
	}
}

// findWebStaticPath returns the configured directory when it holds an
// index.html, otherwise the first web/static found near the working
// directory.
func findWebStaticPath(configured string, logger *zap.Logger) string {
	paths := []string{
		"./web/static",
		"../web/static",
		"../../web/static",
	}
	if configured != "" {
		paths = append([]string{configured}, paths...)
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			return path
		}
		logger.Debug("Tried static path", zap.String("path", path))
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
