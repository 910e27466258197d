package repositories

import (
	"context"
	"time"

	contextutil "renhold/internal/context"
	"renhold/internal/database"
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	GetDueUnsent(ctx context.Context, now time.Time) ([]Notification, error)
	MarkSent(ctx context.Context, notificationID uuid.UUID) error
}

type notificationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewNotificationRepository(db database.DB) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: logger.New("notificationRepository"),
	}
}

func (r *notificationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *notificationRepository) Create(ctx context.Context, notification *Notification) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(notification).Error; err != nil {
		return log.Err("failed to create notification", err,
			"userID", notification.UserID,
			"type", notification.Type,
		)
	}

	return nil
}

func (r *notificationRepository) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]Notification, error) {
	log := r.log.Function("GetByUser")

	var notifications []Notification
	if err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		return nil, log.Err("failed to list notifications", err, "userID", userID)
	}

	return notifications, nil
}

// GetDueUnsent returns scheduled notifications whose time has arrived but
// which have not been delivered yet. Immediate notifications have no
// scheduled_for and never appear here.
func (r *notificationRepository) GetDueUnsent(
	ctx context.Context,
	now time.Time,
) ([]Notification, error) {
	log := r.log.Function("GetDueUnsent")

	var notifications []Notification
	if err := r.getDB(ctx).
		Where("sent = false AND scheduled_for IS NOT NULL AND scheduled_for <= ?", now).
		Order("scheduled_for ASC").
		Find(&notifications).Error; err != nil {
		return nil, log.Err("failed to list due notifications", err)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, notificationID uuid.UUID) error {
	log := r.log.Function("MarkSent")

	if err := r.getDB(ctx).
		Model(&Notification{}).
		Where("id = ?", notificationID).
		Update("sent", true).Error; err != nil {
		return log.Err("failed to mark notification sent", err, "notificationID", notificationID)
	}

	return nil
}
