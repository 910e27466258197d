package handlers

import (
	"strings"

	"renhold/internal/app"
	authController "renhold/internal/controllers/auth"
	"renhold/internal/handlers/middleware"
	"renhold/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authController: app.AuthController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")

	auth.Post("/register", h.register)
	auth.Post("/login", h.login)
	auth.Post("/logout", h.middleware.RequireAuth(), h.logout)
	auth.Get("/me", h.middleware.RequireAuth(), h.me)

	h.router.Get("/users/me", h.middleware.RequireAuth(), h.me)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("register")

	var req authController.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.authController.Register(c.Context(), &req)
	if err != nil {
		_ = log.Err("Failed to register user", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("login")

	var req authController.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.authController.Login(c.Context(), &req)
	if err != nil {
		log.Info("Login rejected")
		return respondError(c, err)
	}

	return c.JSON(response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("logout")

	authHeader := c.Get("Authorization")
	token := ""
	if parts := strings.Split(authHeader, " "); len(parts) == 2 {
		token = parts[1]
	}

	if err := h.authController.Logout(c.Context(), token); err != nil {
		_ = log.Err("Failed to logout", err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("auth_handler").Function("me")

	user := middleware.GetUser(c)
	if user == nil {
		log.Warn("Unauthorized access attempt")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	profile, err := h.authController.GetProfile(c.Context(), user)
	if err != nil {
		_ = log.Err("Failed to get profile", err, "userID", user.ID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"user": profile})
}
