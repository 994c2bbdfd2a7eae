package server

import (
	"log"

	"studyflow-be/internal/bootstrap"
	"studyflow-be/internal/config"
	"studyflow-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, imports are capped lower by validation
	})

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// CORS is handled per route group by the security middleware; no global
	// cors middleware, a wildcard fallback would defeat the allowlist.
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
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")
	protect := c.SecurityMiddleware.Protect

	c.ChatbotController.RegisterRoutes(api, protect)
	c.AnalysisController.RegisterRoutes(api, protect)
	c.IngestController.RegisterRoutes(api, protect)
	c.ImportController.RegisterRoutes(api, protect)
	c.AdminController.RegisterRoutes(api, protect)
}
