package handlers

import (
	"renhold/internal/app"
	bookingController "renhold/internal/controllers/bookings"
	"renhold/internal/handlers/middleware"
	"renhold/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BookingHandler struct {
	Handler
	bookingController bookingController.BookingControllerInterface
}

func NewBookingHandler(app app.App, router fiber.Router) *BookingHandler {
	log := logger.New("handlers").File("booking_handler")
	return &BookingHandler{
		bookingController: app.BookingController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *BookingHandler) Register() {
	bookings := h.router.Group("/bookings", h.middleware.RequireAuth())

	bookings.Get("", h.getBookings)
	bookings.Post("", h.createBooking)
	bookings.Get("/:id", h.getBooking)
	bookings.Put("/:id", h.updateBooking)
	bookings.Post("/:id/cancel", h.cancelBooking)
	bookings.Delete("/:id", h.deleteBooking)
}

func (h *BookingHandler) getBookings(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("booking_handler").Function("getBookings")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookings, err := h.bookingController.GetUserBookings(c.Context(), user)
	if err != nil {
		_ = log.Err("Failed to retrieve bookings", err, "userID", user.ID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

func (h *BookingHandler) createBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("booking_handler").Function("createBooking")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req bookingController.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	booking, err := h.bookingController.Create(c.Context(), user, &req)
	if err != nil {
		_ = log.Err("Failed to create booking", err, "userID", user.ID)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) getBooking(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	booking, err := h.bookingController.Get(c.Context(), user, bookingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) updateBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("booking_handler").Function("updateBooking")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var req bookingController.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	booking, err := h.bookingController.Update(c.Context(), user, bookingID, &req)
	if err != nil {
		_ = log.Err("Failed to update booking", err, "bookingID", bookingID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) cancelBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("booking_handler").Function("cancelBooking")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Warn("Invalid booking ID", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	booking, err := h.bookingController.Cancel(c.Context(), user, bookingID)
	if err != nil {
		_ = log.Err("Failed to cancel booking", err, "bookingID", bookingID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) deleteBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("booking_handler").Function("deleteBooking")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		log.Warn("Invalid booking ID", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	if err := h.bookingController.Delete(c.Context(), user, bookingID); err != nil {
		_ = log.Err("Failed to delete booking", err, "bookingID", bookingID)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
