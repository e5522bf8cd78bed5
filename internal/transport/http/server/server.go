// Package server assembles the fiber application.
package server

import (
	"time"

	"push-review-queue/internal/transport/http/middleware"
	"push-review-queue/internal/transport/http/server/handlers-fiber"
	"push-review-queue/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options configures the application.
type Options struct {
	RequestTimeout time.Duration
	DiffBaseURL    string
	// Registry is served on /metrics when set.
	Registry *prometheus.Registry
}

// New builds the fiber app with middleware, operational endpoints and review routes.
func New(log *zap.SugaredLogger, uc usecase.InterfaceUsecase, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           opts.RequestTimeout,
		WriteTimeout:          opts.RequestTimeout,
		Views:                 handlers_fiber.Views(),
		DisableStartupMessage: true,
	})
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(log))
	// inside the logger so panics still produce an access line
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	if opts.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	h := handlers_fiber.NewHandler(log, uc, opts.DiffBaseURL)
	handlers_fiber.RegisterHandlers(app, h)

	return app
}
