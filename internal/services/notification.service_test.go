package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"renhold/internal/events"
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotificationRepo struct {
	created []Notification
}

func (r *recordingNotificationRepo) Create(_ context.Context, notification *Notification) error {
	r.created = append(r.created, *notification)
	return nil
}

func (r *recordingNotificationRepo) GetByUser(context.Context, uuid.UUID) ([]Notification, error) {
	return nil, nil
}

func (r *recordingNotificationRepo) GetDueUnsent(context.Context, time.Time) ([]Notification, error) {
	return nil, nil
}

func (r *recordingNotificationRepo) MarkSent(context.Context, uuid.UUID) error {
	return nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ events.Channel, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func newTestNotificationService(repo *recordingNotificationRepo) *NotificationService {
	return &NotificationService{
		notificationRepo: repo,
		eventBus:         &recordingPublisher{},
		log:              logger.New("NotificationService"),
	}
}

func unscheduledBooking() *Booking {
	return &Booking{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		UserID:        uuid.New(),
		ServiceType:   "standard",
	}
}

func TestConfirmationWithoutSchedule_NoReminder(t *testing.T) {
	repo := &recordingNotificationRepo{}
	service := newTestNotificationService(repo)
	booking := unscheduledBooking()
	ctx := context.Background()

	require.NoError(t, service.SendBookingConfirmation(ctx, booking))
	require.NoError(t, service.ScheduleReminder(ctx, booking))

	// Confirmation lands immediately; no reminder can be placed without a slot.
	require.Len(t, repo.created, 1)
	confirmation := repo.created[0]
	assert.Equal(t, NotificationBookingConfirmed, confirmation.Type)
	assert.Equal(t, booking.UserID, confirmation.UserID)
	assert.True(t, confirmation.Sent)
	assert.Nil(t, confirmation.ScheduledFor)
	assert.Contains(t, confirmation.Message, "mottatt")
}

func TestScheduleReminder_SkipsSlotWithin24Hours(t *testing.T) {
	repo := &recordingNotificationRepo{}
	service := newTestNotificationService(repo)

	soon := time.Now().Add(2 * time.Hour)
	booking := unscheduledBooking()
	date := soon.Format("2006-01-02")
	clock := soon.Format("15:04")
	booking.ScheduledDate = &date
	booking.ScheduledTime = &clock

	require.NoError(t, service.ScheduleReminder(context.Background(), booking))
	assert.Empty(t, repo.created)
}

func TestScheduleReminder_CreatesRowDue24HoursBefore(t *testing.T) {
	repo := &recordingNotificationRepo{}
	service := newTestNotificationService(repo)

	slot := time.Now().Add(72 * time.Hour).UTC()
	booking := unscheduledBooking()
	date := slot.Format("2006-01-02")
	clock := slot.Format("15:04")
	booking.ScheduledDate = &date
	booking.ScheduledTime = &clock
	booking.Property = &Property{Address: "Storgata 1, Oslo"}

	require.NoError(t, service.ScheduleReminder(context.Background(), booking))

	require.Len(t, repo.created, 1)
	reminder := repo.created[0]
	assert.Equal(t, NotificationReminder, reminder.Type)
	assert.Equal(t, booking.UserID, reminder.UserID)
	assert.False(t, reminder.Sent)
	assert.Contains(t, reminder.Message, "Storgata 1, Oslo")
	assert.Contains(t, reminder.Message, fmt.Sprintf("kl. %s", clock))

	scheduledAt, ok := booking.ScheduledAt()
	require.True(t, ok)
	require.NotNil(t, reminder.ScheduledFor)
	assert.Equal(t, scheduledAt.Add(-24*time.Hour), *reminder.ScheduledFor)
}
