package handlers

import (
	"renhold/internal/app"
	"renhold/internal/handlers/middleware"
	"renhold/internal/logger"
	"renhold/internal/services"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Handler
	notificationService *services.NotificationService
}

func NewNotificationHandler(app app.App, router fiber.Router) *NotificationHandler {
	log := logger.New("handlers").File("notification_handler")
	return &NotificationHandler{
		notificationService: app.NotificationService,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *NotificationHandler) Register() {
	notifications := h.router.Group("/notifications", h.middleware.RequireAuth())
	notifications.Get("", h.getNotifications)
}

func (h *NotificationHandler) getNotifications(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("notification_handler").Function("getNotifications")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	notifications, err := h.notificationService.GetForUser(c.Context(), user.ID)
	if err != nil {
		_ = log.Err("Failed to get notifications", err, "userID", user.ID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}
