// FILE: internal/server/server.go
package server

import (
	"log"

	"rag-admin-be/internal/bootstrap"
	"rag-admin-be/internal/config"
	"rag-admin-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // uploads and CSV imports
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Uploaded datasource files are served back for the admin preview pane.
	app.Static("/uploads", "./"+cfg.App.UploadDir)

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Signed-in user surface. Each controller attaches its own auth
	// middleware because /auth/login and /ws must stay reachable without
	// a bearer header.
	c.AuthController.RegisterRoutes(api)
	c.ChatController.RegisterRoutes(api)
	c.FeedbackController.RegisterPublicRoutes(api)
	c.NotificationHandler.RegisterRoutes(api)

	// Admin console surface.
	admin := api.Group("/admin", serverutils.AdminMiddleware)
	c.UserController.RegisterRoutes(admin)
	c.KnowledgeBaseController.RegisterRoutes(admin)
	c.DatasourceController.RegisterRoutes(admin)
	c.DocumentController.RegisterRoutes(admin)
	c.GraphController.RegisterRoutes(admin)
	c.ChatEngineController.RegisterRoutes(admin)
	c.AIModelController.RegisterRoutes(admin)
	c.DatabaseConnectionController.RegisterRoutes(admin)
	c.FeedbackController.RegisterRoutes(admin)
	c.EvaluationController.RegisterRoutes(admin)
	c.SiteSettingController.RegisterRoutes(admin)
	c.SystemController.RegisterRoutes(admin)
}
