package handlers

import (
	"renhold/internal/app"
	"renhold/internal/apperrors"
	"renhold/internal/handlers/middleware"
	"renhold/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewPropertyHandler(*app, api).Register()
	NewBookingHandler(*app, api).Register()
	NewEmployeeHandler(*app, api).Register()
	NewJobHandler(*app, api).Register()
	NewNotificationHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

// respondError translates a controller error into the taxonomy response
// shape. The raw error never reaches the client.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.StatusOf(err)).JSON(fiber.Map{
		"code":  apperrors.CodeOf(err),
		"error": apperrors.Message(err),
	})
}
