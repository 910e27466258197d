package handlers

import (
	"renhold/internal/app"
	jobController "renhold/internal/controllers/jobs"
	"renhold/internal/handlers/middleware"
	"renhold/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// JobHandler exposes the before/after images and chat thread attached to a
// booking.
type JobHandler struct {
	Handler
	jobController jobController.JobControllerInterface
}

func NewJobHandler(app app.App, router fiber.Router) *JobHandler {
	log := logger.New("handlers").File("job_handler")
	return &JobHandler{
		jobController: app.JobController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *JobHandler) Register() {
	bookings := h.router.Group("/bookings", h.middleware.RequireAuth())

	bookings.Get("/:id/images", h.getImages)
	bookings.Post("/:id/images", h.addImage)
	bookings.Get("/:id/messages", h.getMessages)
	bookings.Post("/:id/messages", h.addMessage)
	bookings.Post("/:id/messages/read", h.markMessagesRead)

	images := h.router.Group("/images", h.middleware.RequireAuth())
	images.Delete("/:id", h.deleteImage)
}

func (h *JobHandler) parseBookingID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func (h *JobHandler) getImages(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := h.parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	images, err := h.jobController.GetImages(c.Context(), user, bookingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"images": images})
}

func (h *JobHandler) addImage(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("addImage")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := h.parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var req jobController.AddImageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	image, err := h.jobController.AddImage(c.Context(), user, bookingID, &req)
	if err != nil {
		_ = log.Err("Failed to add job image", err, "bookingID", bookingID)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"image": image})
}

func (h *JobHandler) deleteImage(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("deleteImage")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	imageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image ID",
		})
	}

	if err := h.jobController.DeleteImage(c.Context(), user, imageID); err != nil {
		_ = log.Err("Failed to delete job image", err, "imageID", imageID)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *JobHandler) getMessages(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := h.parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	messages, err := h.jobController.GetMessages(c.Context(), user, bookingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"messages": messages})
}

func (h *JobHandler) addMessage(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("job_handler").Function("addMessage")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := h.parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var req jobController.AddMessageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message, err := h.jobController.AddMessage(c.Context(), user, bookingID, &req)
	if err != nil {
		_ = log.Err("Failed to add job message", err, "bookingID", bookingID)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message})
}

func (h *JobHandler) markMessagesRead(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := h.parseBookingID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	if err := h.jobController.MarkMessagesRead(c.Context(), user, bookingID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
