package handlers

import (
	"renhold/internal/app"
	propertyController "renhold/internal/controllers/properties"
	"renhold/internal/handlers/middleware"
	"renhold/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PropertyHandler struct {
	Handler
	propertyController propertyController.PropertyControllerInterface
}

func NewPropertyHandler(app app.App, router fiber.Router) *PropertyHandler {
	log := logger.New("handlers").File("property_handler")
	return &PropertyHandler{
		propertyController: app.PropertyController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PropertyHandler) Register() {
	properties := h.router.Group("/properties", h.middleware.RequireAuth())

	properties.Get("", h.getProperties)
	properties.Post("", h.createProperty)
	properties.Get("/:id", h.getProperty)
	properties.Put("/:id", h.updateProperty)
	properties.Delete("/:id", h.deleteProperty)
}

func (h *PropertyHandler) getProperties(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("getProperties")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	properties, err := h.propertyController.GetAll(c.Context(), user)
	if err != nil {
		_ = log.Err("Failed to retrieve properties", err, "userID", user.ID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"properties": properties})
}

func (h *PropertyHandler) createProperty(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("createProperty")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req propertyController.PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	property, err := h.propertyController.Create(c.Context(), user, &req)
	if err != nil {
		_ = log.Err("Failed to create property", err, "userID", user.ID)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) getProperty(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("getProperty")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Warn("Invalid property ID", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	property, err := h.propertyController.Get(c.Context(), user, propertyID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) updateProperty(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("updateProperty")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Warn("Invalid property ID", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var req propertyController.PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	property, err := h.propertyController.Update(c.Context(), user, propertyID, &req)
	if err != nil {
		_ = log.Err("Failed to update property", err, "propertyID", propertyID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

func (h *PropertyHandler) deleteProperty(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("property_handler").Function("deleteProperty")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Warn("Invalid property ID", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	if err := h.propertyController.Delete(c.Context(), user, propertyID); err != nil {
		_ = log.Err("Failed to delete property", err, "propertyID", propertyID)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
