package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/backoffice/backoffice/adminuser/adminuserapi"
	"github.com/Abraxas-365/backoffice/backoffice/application/applicationapi"
	"github.com/Abraxas-365/backoffice/backoffice/blogpost/blogpostapi"
	"github.com/Abraxas-365/backoffice/backoffice/booking/bookingapi"
	"github.com/Abraxas-365/backoffice/backoffice/careerjob/careerjobapi"
	"github.com/Abraxas-365/backoffice/backoffice/contact/contactapi"
	"github.com/Abraxas-365/backoffice/backoffice/dashboard/dashboardapi"
	"github.com/Abraxas-365/backoffice/backoffice/notification/notificationapi"
	"github.com/Abraxas-365/backoffice/backoffice/service/serviceapi"
	"github.com/Abraxas-365/backoffice/pkg/config"
	"github.com/Abraxas-365/backoffice/pkg/errx"
	"github.com/Abraxas-365/backoffice/pkg/iam/auth/authapi"
	"github.com/Abraxas-365/backoffice/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	flag.Parse()

	// 1. Load Config and Initialize Logger
	cfg, err := config.Load(*envFile)
	if err != nil {
		logx.Fatalf("Failed to load config: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
	logx.Infof("Starting back-office API (%s)...", cfg.Env)

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Routes
	app := newApp(container)

	// 4. Background email delivery
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if container.EmailWorker != nil {
		container.EmailWorker.Start(ctx)
	}

	// 5. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	if container.EmailWorker != nil {
		container.EmailWorker.Wait()
	}

	logx.Info("Server exited")
}

// newApp builds the Fiber app with middleware and every route
func newApp(container *Container) *fiber.App {
	cfg := container.Config

	app := fiber.New(fiber.Config{
		AppName:               "Back-office API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowCredentials: cfg.Server.AllowOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:X-Request-ID}\n",
	}))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status":   "ok",
			"upstream": fiber.Map{"primary": cfg.Upstream.BaseURL, "alternate": cfg.Upstream.AlternateBaseURL},
		}
		if container.EmailQueue != nil {
			status["emailQueue"] = container.EmailQueue.Ping(c.UserContext()) == nil
		}
		return c.JSON(status)
	})

	// --- Auth Routes ---
	// /api/login, /api/logout, /api/session
	authapi.RegisterRoutes(app, container.AuthHandlers)

	// --- Resource Routes ---
	adminuserapi.RegisterRoutes(app, container.AdminUserHandlers)
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers)
	blogpostapi.RegisterRoutes(app, container.BlogPostHandlers)
	bookingapi.RegisterRoutes(app, container.BookingHandlers)
	careerjobapi.RegisterRoutes(app, container.CareerJobHandlers)
	contactapi.RegisterRoutes(app, container.ContactHandlers)

	// Services and sub-services: /api/services, /api/services/:slug/sub-services
	serviceapi.RegisterRoutes(app, container.ServiceHandlers)

	// --- Back-office extras ---
	dashboardapi.RegisterRoutes(app, container.DashboardHandlers)
	notificationapi.RegisterRoutes(app, container.NotificationHandlers)

	// Dashboard front-end build, if any
	if cfg.Server.StaticDir != "" {
		app.Static("/", cfg.Server.StaticDir)
	}

	return app
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	// If it's our custom errx.Error
	var e *errx.Error
	if errors.As(err, &e) {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), e)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"details": err.Error(),
	})
}
