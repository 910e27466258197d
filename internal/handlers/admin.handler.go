package handlers

import (
	"renhold/internal/app"
	adminController "renhold/internal/controllers/admin"
	"renhold/internal/handlers/middleware"
	"renhold/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.AdminController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAuth(), h.middleware.RequireAdmin())
	admin.Post("/roles", h.grantRole)
}

func (h *AdminHandler) grantRole(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("admin_handler").Function("grantRole")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req adminController.GrantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.adminController.GrantRole(c.Context(), user, &req); err != nil {
		_ = log.Err("Failed to grant role", err, "targetUserID", req.UserID)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
