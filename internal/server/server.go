package server

import (
	"log"

	"event-reg-be/internal/bootstrap"
	"event-reg-be/internal/config"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/serverutils"
	ws "event-reg-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // receipts are image/pdf uploads
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	// Uploaded receipts are served back to admins for review.
	app.Static("/uploads", cfg.App.UploadDir)

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

	c.AuthController.RegisterRoutes(api)
	c.OAuthController.RegisterRoutes(api)
	c.RegistrationController.RegisterRoutes(api)
	c.CheckInController.RegisterRoutes(api)
	c.PaymentController.RegisterRoutes(api)
	c.TeamController.RegisterRoutes(api)
	c.FinanceController.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)

	registerCheckInFeed(app, c)
}

// registerCheckInFeed exposes the live check-in stream for staff
// dashboards at /ws/checkin.
func registerCheckInFeed(app *fiber.App, c *bootstrap.Container) {
	feed := app.Group("/ws/checkin",
		serverutils.JwtMiddleware,
		serverutils.RequireRoles(lifecycle.RoleEventOrganizer, lifecycle.RoleRegionalAdmin, lifecycle.RoleSuperAdmin),
	)

	feed.Use(func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	feed.Get("/", websocket.New(func(conn *websocket.Conn) {
		userIdStr, _ := conn.Locals("user_id").(string)
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			conn.Close()
			return
		}
		ws.ServeWs(c.WebSocketHub, conn, userId)
	}))
}
