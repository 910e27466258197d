package handlers

import (
	"renhold/internal/app"
	bookingController "renhold/internal/controllers/bookings"
	"renhold/internal/handlers/middleware"
	"renhold/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EmployeeHandler exposes the employee-facing booking lifecycle operations.
type EmployeeHandler struct {
	Handler
	bookingController bookingController.BookingControllerInterface
}

func NewEmployeeHandler(app app.App, router fiber.Router) *EmployeeHandler {
	log := logger.New("handlers").File("employee_handler")
	return &EmployeeHandler{
		bookingController: app.BookingController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *EmployeeHandler) Register() {
	employee := h.router.Group(
		"/employee",
		h.middleware.RequireAuth(),
		h.middleware.RequireEmployee(),
	)

	employee.Get("/bookings", h.getAllBookings)
	employee.Post("/bookings/:id/confirm", h.confirmBooking)
	employee.Post("/bookings/:id/start", h.startBooking)
	employee.Post("/bookings/:id/complete", h.completeBooking)
	employee.Post("/bookings/:id/cancel", h.cancelBooking)
}

func (h *EmployeeHandler) getAllBookings(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("employee_handler").Function("getAllBookings")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	bookings, err := h.bookingController.GetEmployeeBookings(c.Context(), user)
	if err != nil {
		_ = log.Err("Failed to retrieve employee bookings", err, "userID", user.ID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

func (h *EmployeeHandler) confirmBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("employee_handler").Function("confirmBooking")

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

	booking, err := h.bookingController.Confirm(c.Context(), user, bookingID)
	if err != nil {
		_ = log.Err("Failed to confirm booking", err, "bookingID", bookingID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func (h *EmployeeHandler) startBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("employee_handler").Function("startBooking")

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

	booking, err := h.bookingController.Start(c.Context(), user, bookingID)
	if err != nil {
		_ = log.Err("Failed to start booking", err, "bookingID", bookingID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func (h *EmployeeHandler) completeBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("employee_handler").Function("completeBooking")

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

	var req bookingController.CompleteBookingRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Warn("Invalid request body", "error", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	booking, err := h.bookingController.Complete(c.Context(), user, bookingID, &req)
	if err != nil {
		_ = log.Err("Failed to complete booking", err, "bookingID", bookingID)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}

// Cancellation is owner-or-admin policy; the route exists here so admins
// working the employee view can cancel without switching surfaces.
func (h *EmployeeHandler) cancelBooking(c *fiber.Ctx) error {
	log := logger.New("handlers").TraceFromContext(c.UserContext()).File("employee_handler").Function("cancelBooking")

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
