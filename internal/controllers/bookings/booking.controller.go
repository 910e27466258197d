package bookingController

import (
	"context"
	"fmt"
	"math"
	"time"

	"renhold/internal/apperrors"
	"renhold/internal/events"
	"renhold/internal/logger"
	. "renhold/internal/models"
	"renhold/internal/repositories"
	"renhold/internal/sanitize"
	"renhold/internal/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	PropertyID          uuid.UUID `json:"propertyId"  validate:"required"`
	ServiceType         string    `json:"serviceType" validate:"required"`
	ScheduledDate       *string   `json:"scheduledDate,omitempty"`
	ScheduledTime       *string   `json:"scheduledTime,omitempty"`
	EstimatedDuration   *int      `json:"estimatedDuration,omitempty"`
	EstimatedPriceMin   *int64    `json:"estimatedPriceMin,omitempty"`
	EstimatedPriceMax   *int64    `json:"estimatedPriceMax,omitempty"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
}

type UpdateBookingRequest struct {
	ServiceType         *string `json:"serviceType,omitempty"`
	ScheduledDate       *string `json:"scheduledDate,omitempty"`
	ScheduledTime       *string `json:"scheduledTime,omitempty"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

type CompleteBookingRequest struct {
	EmployeeNotes string `json:"employeeNotes,omitempty"`
}

type BookingControllerInterface interface {
	Create(ctx context.Context, user *User, request *CreateBookingRequest) (*Booking, error)
	GetUserBookings(ctx context.Context, user *User) ([]Booking, error)
	Get(ctx context.Context, user *User, bookingID uuid.UUID) (*Booking, error)
	GetEmployeeBookings(ctx context.Context, user *User) ([]EmployeeBooking, error)
	Update(ctx context.Context, user *User, bookingID uuid.UUID, request *UpdateBookingRequest) (*Booking, error)
	Confirm(ctx context.Context, actor *User, bookingID uuid.UUID) (*Booking, error)
	Start(ctx context.Context, actor *User, bookingID uuid.UUID) (*Booking, error)
	Complete(ctx context.Context, actor *User, bookingID uuid.UUID, request *CompleteBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, actor *User, bookingID uuid.UUID) (*Booking, error)
	Delete(ctx context.Context, user *User, bookingID uuid.UUID) error
}

// changeAnnouncer is the slice of the event bus this controller needs.
type changeAnnouncer interface {
	PublishBookingChanged(bookingID string, userIDs []uuid.UUID) error
}

// BookingController owns the booking lifecycle. Every mutation re-reads the
// booking afterwards and returns the authoritative row; concurrent writers
// are serialized by the database, not by this controller.
type BookingController struct {
	bookingRepo         repositories.BookingRepository
	propertyRepo        repositories.PropertyRepository
	estimator           *services.EstimatorService
	notificationService *services.NotificationService
	transactionService  *services.TransactionService
	eventBus            changeAnnouncer
	log                 logger.Logger
}

func New(
	repos repositories.Repository,
	estimator *services.EstimatorService,
	notificationService *services.NotificationService,
	transactionService *services.TransactionService,
	eventBus *events.EventBus,
) BookingControllerInterface {
	return &BookingController{
		bookingRepo:         repos.Booking,
		propertyRepo:        repos.Property,
		estimator:           estimator,
		notificationService: notificationService,
		transactionService:  transactionService,
		eventBus:            eventBus,
		log:                 logger.New("bookingController"),
	}
}

func scopeFor(user *User) repositories.Scope {
	return repositories.Scope{UserID: user.ID, Employee: user.IsEmployee()}
}

// elapsedMinutes rounds the span between start and end to whole minutes.
// Clock skew can put end before start; the result never goes below zero.
func elapsedMinutes(start, end time.Time) int {
	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}

func (c *BookingController) Create(
	ctx context.Context,
	user *User,
	request *CreateBookingRequest,
) (*Booking, error) {
	log := c.log.Function("Create")

	serviceType := sanitize.Text(request.ServiceType)
	if serviceType == "" {
		return nil, fmt.Errorf("%w: service type is required", apperrors.ErrValidation)
	}

	if request.PropertyID == uuid.Nil {
		return nil, fmt.Errorf("%w: property is required", apperrors.ErrValidation)
	}

	if request.ScheduledDate != nil && !sanitize.Date(*request.ScheduledDate) {
		return nil, fmt.Errorf("%w: scheduled date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	if request.ScheduledTime != nil && !sanitize.TimeOfDay(*request.ScheduledTime) {
		return nil, fmt.Errorf("%w: scheduled time must be HH:MM", apperrors.ErrValidation)
	}

	// Scoped read doubles as the ownership check.
	property, err := c.propertyRepo.GetByID(ctx, user.ID, request.PropertyID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	booking := Booking{
		UserID:              user.ID,
		PropertyID:          property.ID,
		ServiceType:         serviceType,
		ScheduledDate:       request.ScheduledDate,
		ScheduledTime:       request.ScheduledTime,
		EstimatedDuration:   request.EstimatedDuration,
		EstimatedPriceMin:   request.EstimatedPriceMin,
		EstimatedPriceMax:   request.EstimatedPriceMax,
		SpecialInstructions: sanitize.Notes(request.SpecialInstructions),
	}

	if booking.EstimatedDuration == nil || booking.EstimatedPriceMin == nil {
		if estimate, ok := c.estimator.Estimate(property, serviceType); ok {
			booking.EstimatedDuration = &estimate.DurationMinutes
			booking.EstimatedPriceMin = &estimate.PriceMin
			booking.EstimatedPriceMax = &estimate.PriceMax
		}
	}

	if booking.EstimatedPriceMin != nil && booking.EstimatedPriceMax != nil &&
		*booking.EstimatedPriceMin > *booking.EstimatedPriceMax {
		return nil, fmt.Errorf(
			"%w: minimum price cannot exceed maximum price",
			apperrors.ErrValidation,
		)
	}

	if err := c.bookingRepo.Create(ctx, &booking); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Booking created", "bookingID", booking.ID, "userID", user.ID)

	return c.refetch(ctx, scopeFor(user), booking.ID)
}

func (c *BookingController) GetUserBookings(ctx context.Context, user *User) ([]Booking, error) {
	bookings, err := c.bookingRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}
	return bookings, nil
}

func (c *BookingController) Get(
	ctx context.Context,
	user *User,
	bookingID uuid.UUID,
) (*Booking, error) {
	booking, err := c.bookingRepo.GetByID(ctx, scopeFor(user), bookingID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}
	return booking, nil
}

func (c *BookingController) GetEmployeeBookings(
	ctx context.Context,
	user *User,
) ([]EmployeeBooking, error) {
	if !user.IsEmployee() {
		return nil, apperrors.ErrPermissionDenied
	}

	bookings, err := c.bookingRepo.GetAllForEmployees(ctx)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}
	return bookings, nil
}

// Update lets the owner reschedule a booking while it is still pending.
// Changing the service type re-runs the estimator against the property.
func (c *BookingController) Update(
	ctx context.Context,
	user *User,
	bookingID uuid.UUID,
	request *UpdateBookingRequest,
) (*Booking, error) {
	log := c.log.Function("Update")

	// Owner scope regardless of role, so employees cannot reschedule
	// customer bookings through this path.
	scope := repositories.Scope{UserID: user.ID}
	booking, err := c.bookingRepo.GetByID(ctx, scope, bookingID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	if booking.Status != StatusPending {
		return nil, fmt.Errorf(
			"%w: booking is %s, only pending bookings can be changed",
			apperrors.ErrValidation,
			booking.Status,
		)
	}

	fields := map[string]any{}

	if request.ScheduledDate != nil {
		if !sanitize.Date(*request.ScheduledDate) {
			return nil, fmt.Errorf("%w: scheduled date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		fields["scheduled_date"] = *request.ScheduledDate
	}

	if request.ScheduledTime != nil {
		if !sanitize.TimeOfDay(*request.ScheduledTime) {
			return nil, fmt.Errorf("%w: scheduled time must be HH:MM", apperrors.ErrValidation)
		}
		fields["scheduled_time"] = *request.ScheduledTime
	}

	if request.SpecialInstructions != nil {
		fields["special_instructions"] = sanitize.Notes(*request.SpecialInstructions)
	}

	if request.ServiceType != nil {
		serviceType := sanitize.Text(*request.ServiceType)
		if serviceType == "" {
			return nil, fmt.Errorf("%w: service type is required", apperrors.ErrValidation)
		}
		fields["service_type"] = serviceType

		property, err := c.propertyRepo.GetByID(ctx, user.ID, booking.PropertyID)
		if err != nil {
			return nil, apperrors.FromDatabase(err)
		}
		if estimate, ok := c.estimator.Estimate(property, serviceType); ok {
			fields["estimated_duration"] = estimate.DurationMinutes
			fields["estimated_price_min"] = estimate.PriceMin
			fields["estimated_price_max"] = estimate.PriceMax
		}
	}

	if len(fields) == 0 {
		return booking, nil
	}

	if err := c.bookingRepo.UpdateFields(ctx, booking.ID, fields); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Booking updated", "bookingID", bookingID, "userID", user.ID)

	return c.refetchAndAnnounce(ctx, user, bookingID)
}

// Confirm moves a pending booking to confirmed, assigning the acting
// employee. The status update and notification rows commit together, so a
// failed confirm never leaves a half-applied assignment.
func (c *BookingController) Confirm(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
) (*Booking, error) {
	log := c.log.Function("Confirm")

	if !actor.IsEmployee() {
		return nil, apperrors.ErrPermissionDenied
	}

	err := c.transactionService.Execute(ctx, func(txCtx context.Context, tx *gorm.DB) error {
		booking, err := c.bookingRepo.GetByID(txCtx, scopeFor(actor), bookingID)
		if err != nil {
			return apperrors.FromDatabase(err)
		}

		if booking.Status != StatusPending {
			return fmt.Errorf(
				"%w: booking is %s, only pending bookings can be confirmed",
				apperrors.ErrValidation,
				booking.Status,
			)
		}

		now := time.Now()
		fields := map[string]any{
			"status":               StatusConfirmed,
			"assigned_employee_id": actor.ID,
			"approved_at":          now,
			"approved_by":          actor.ID,
		}
		if err := c.bookingRepo.UpdateFields(txCtx, booking.ID, fields); err != nil {
			return apperrors.FromDatabase(err)
		}

		booking.Status = StatusConfirmed
		booking.AssignedEmployeeID = &actor.ID
		booking.ApprovedAt = &now
		booking.ApprovedBy = &actor.ID

		if err := c.notificationService.SendBookingConfirmation(txCtx, booking); err != nil {
			return apperrors.FromDatabase(err)
		}

		return c.notificationService.ScheduleReminder(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Booking confirmed", "bookingID", bookingID, "employeeID", actor.ID)

	return c.refetchAndAnnounce(ctx, actor, bookingID)
}

// Start moves a booking into in_progress. Allowed from pending or confirmed
// when the booking is unassigned or assigned to the acting employee.
func (c *BookingController) Start(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
) (*Booking, error) {
	log := c.log.Function("Start")

	if !actor.IsEmployee() {
		return nil, apperrors.ErrPermissionDenied
	}

	booking, err := c.bookingRepo.GetByID(ctx, scopeFor(actor), bookingID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	if !booking.Status.CanTransitionTo(StatusInProgress) {
		return nil, fmt.Errorf(
			"%w: booking is %s and cannot be started",
			apperrors.ErrValidation,
			booking.Status,
		)
	}

	if booking.AssignedEmployeeID != nil && *booking.AssignedEmployeeID != actor.ID {
		return nil, fmt.Errorf(
			"%w: booking is assigned to another employee",
			apperrors.ErrPermissionDenied,
		)
	}

	fields := map[string]any{
		"status":     StatusInProgress,
		"start_time": time.Now(),
	}
	if booking.AssignedEmployeeID == nil {
		fields["assigned_employee_id"] = actor.ID
	}

	if err := c.bookingRepo.UpdateFields(ctx, booking.ID, fields); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Booking started", "bookingID", bookingID, "employeeID", actor.ID)

	return c.refetchAndAnnounce(ctx, actor, bookingID)
}

// Complete closes out an in_progress booking, deriving actual_duration from
// the recorded start time.
func (c *BookingController) Complete(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
	request *CompleteBookingRequest,
) (*Booking, error) {
	log := c.log.Function("Complete")

	if !actor.IsEmployee() {
		return nil, apperrors.ErrPermissionDenied
	}

	booking, err := c.bookingRepo.GetByID(ctx, scopeFor(actor), bookingID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	if booking.Status != StatusInProgress {
		return nil, fmt.Errorf(
			"%w: booking is %s, only in-progress bookings can be completed",
			apperrors.ErrValidation,
			booking.Status,
		)
	}

	if booking.StartTime == nil {
		return nil, fmt.Errorf(
			"%w: booking has no recorded start time",
			apperrors.ErrValidation,
		)
	}

	endTime := time.Now()
	actualDuration := elapsedMinutes(*booking.StartTime, endTime)

	fields := map[string]any{
		"status":          StatusCompleted,
		"end_time":        endTime,
		"actual_duration": actualDuration,
	}
	if notes := sanitize.Notes(request.EmployeeNotes); notes != "" {
		fields["employee_notes"] = notes
	}

	if err := c.bookingRepo.UpdateFields(ctx, booking.ID, fields); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Booking completed",
		"bookingID", bookingID,
		"employeeID", actor.ID,
		"actualDuration", actualDuration,
	)

	return c.refetchAndAnnounce(ctx, actor, bookingID)
}

// Cancel is available to the booking owner and to admins, from any
// non-terminal status.
func (c *BookingController) Cancel(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
) (*Booking, error) {
	log := c.log.Function("Cancel")

	scope := repositories.Scope{UserID: actor.ID, Employee: actor.IsAdmin()}
	booking, err := c.bookingRepo.GetByID(ctx, scope, bookingID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	if booking.Status.IsTerminal() {
		return nil, fmt.Errorf(
			"%w: booking is already %s",
			apperrors.ErrValidation,
			booking.Status,
		)
	}

	if err := c.bookingRepo.UpdateFields(ctx, booking.ID, map[string]any{
		"status": StatusCancelled,
	}); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Booking cancelled", "bookingID", bookingID, "actorID", actor.ID)

	return c.refetchAndAnnounce(ctx, actor, bookingID)
}

func (c *BookingController) Delete(
	ctx context.Context,
	user *User,
	bookingID uuid.UUID,
) error {
	log := c.log.Function("Delete")

	if err := c.bookingRepo.Delete(ctx, user.ID, bookingID); err != nil {
		return apperrors.FromDatabase(err)
	}

	log.Info("Booking deleted", "bookingID", bookingID, "userID", user.ID)

	c.announce(&Booking{BaseUUIDModel: BaseUUIDModel{ID: bookingID}, UserID: user.ID})
	return nil
}

// refetch re-reads the authoritative row after a write instead of trusting
// the optimistic local copy.
func (c *BookingController) refetch(
	ctx context.Context,
	scope repositories.Scope,
	bookingID uuid.UUID,
) (*Booking, error) {
	booking, err := c.bookingRepo.GetByID(ctx, scope, bookingID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}
	return booking, nil
}

func (c *BookingController) refetchAndAnnounce(
	ctx context.Context,
	actor *User,
	bookingID uuid.UUID,
) (*Booking, error) {
	booking, err := c.refetch(ctx, repositories.Scope{UserID: actor.ID, Employee: true}, bookingID)
	if err != nil {
		return nil, err
	}

	c.announce(booking)
	return booking, nil
}

// announce tells interested users that the booking changed. Consumers react
// by refetching their booking lists; delivery is best effort.
func (c *BookingController) announce(booking *Booking) {
	log := c.log.Function("announce")

	interested := []uuid.UUID{booking.UserID}
	if booking.AssignedEmployeeID != nil {
		interested = append(interested, *booking.AssignedEmployeeID)
	}

	if err := c.eventBus.PublishBookingChanged(booking.ID.String(), interested); err != nil {
		log.Warn("failed to publish booking change", "bookingID", booking.ID, "error", err)
	}
}
