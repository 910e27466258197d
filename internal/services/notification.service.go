package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"renhold/internal/events"
	"renhold/internal/logger"
	. "renhold/internal/models"
	"renhold/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// notificationPublisher is the slice of the event bus this service needs.
type notificationPublisher interface {
	Publish(channel events.Channel, event events.Event) error
}

// NotificationService turns lifecycle events into notification requests.
// Delivery is best effort: the rows are the source of truth, the event bus
// only nudges connected clients.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	eventBus         notificationPublisher
	log              logger.Logger
}

func NewNotificationService(
	repos repositories.Repository,
	eventBus *events.EventBus,
) *NotificationService {
	return &NotificationService{
		notificationRepo: repos.Notification,
		eventBus:         eventBus,
		log:              logger.New("NotificationService"),
	}
}

// SendBookingConfirmation records an immediate confirmation notification for
// the booking owner and pushes it out.
func (s *NotificationService) SendBookingConfirmation(
	ctx context.Context,
	booking *Booking,
) error {
	log := s.log.Function("SendBookingConfirmation")

	message := fmt.Sprintf("Din %s er mottatt og vil bli planlagt", booking.ServiceType)
	if booking.ScheduledDate != nil && booking.ScheduledTime != nil {
		message = fmt.Sprintf(
			"Din %s er planlagt %s kl. %s",
			booking.ServiceType,
			*booking.ScheduledDate,
			*booking.ScheduledTime,
		)
	}

	notification := Notification{
		UserID:  booking.UserID,
		Type:    NotificationBookingConfirmed,
		Title:   "Bestilling bekreftet! ✅",
		Message: message,
		Sent:    true,
		Payload: bookingPayload(booking),
	}

	if err := s.notificationRepo.Create(ctx, &notification); err != nil {
		return err
	}

	s.publish(&notification)
	log.Info("Booking confirmation sent", "bookingID", booking.ID, "userID", booking.UserID)

	return nil
}

// ScheduleReminder stores a reminder due 24 hours before the scheduled slot.
// Bookings without a date and time, or starting within 24 hours, get none.
func (s *NotificationService) ScheduleReminder(ctx context.Context, booking *Booking) error {
	log := s.log.Function("ScheduleReminder")

	scheduledAt, ok := booking.ScheduledAt()
	if !ok {
		log.Debug("No schedule on booking, skipping reminder", "bookingID", booking.ID)
		return nil
	}

	reminderAt := scheduledAt.Add(-24 * time.Hour)
	if !reminderAt.After(time.Now()) {
		log.Debug("Booking starts within 24 hours, skipping reminder", "bookingID", booking.ID)
		return nil
	}

	address := ""
	if booking.Property != nil {
		address = booking.Property.Address
	}

	notification := Notification{
		UserID: booking.UserID,
		Type:   NotificationReminder,
		Title:  "Påminnelse: Vask i morgen 🧽",
		Message: fmt.Sprintf(
			"%s er planlagt i morgen kl. %s på %s",
			booking.ServiceType,
			*booking.ScheduledTime,
			address,
		),
		ScheduledFor: &reminderAt,
		Payload:      bookingPayload(booking),
	}

	if err := s.notificationRepo.Create(ctx, &notification); err != nil {
		return err
	}

	log.Info("Reminder scheduled", "bookingID", booking.ID, "reminderAt", reminderAt)
	return nil
}

// Deliver marks a stored notification sent and pushes it to the user. Used by
// the reminder job once a scheduled notification comes due.
func (s *NotificationService) Deliver(ctx context.Context, notification *Notification) error {
	if err := s.notificationRepo.MarkSent(ctx, notification.ID); err != nil {
		return err
	}

	s.publish(notification)
	return nil
}

func (s *NotificationService) GetForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]Notification, error) {
	return s.notificationRepo.GetByUser(ctx, userID)
}

func (s *NotificationService) publish(notification *Notification) {
	log := s.log.Function("publish")

	err := s.eventBus.Publish(events.NOTIFICATIONS_CHANNEL, events.Event{
		Type:    events.NOTIFICATION,
		UserIDs: []string{notification.UserID.String()},
		Data: map[string]any{
			"id":      notification.ID.String(),
			"type":    notification.Type,
			"title":   notification.Title,
			"message": notification.Message,
		},
	})
	if err != nil {
		log.Warn("failed to publish notification event", "notificationID", notification.ID, "error", err)
	}
}

func bookingPayload(booking *Booking) datatypes.JSON {
	payload, err := json.Marshal(map[string]any{
		"bookingId":   booking.ID.String(),
		"serviceType": booking.ServiceType,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(payload)
}
