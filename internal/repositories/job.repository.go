package repositories

import (
	"context"

	"renhold/internal/database"
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository interface {
	AddImage(ctx context.Context, image *JobImage) error
	GetImages(ctx context.Context, bookingID uuid.UUID) ([]JobImage, error)
	DeleteImage(ctx context.Context, uploaderID, imageID uuid.UUID) error
	AddMessage(ctx context.Context, message *JobMessage) error
	GetMessages(ctx context.Context, bookingID uuid.UUID) ([]JobMessage, error)
	MarkMessagesRead(ctx context.Context, bookingID uuid.UUID, byEmployee bool) error
}

type jobRepository struct {
	db  database.DB
	log logger.Logger
}

func NewJobRepository(db database.DB) JobRepository {
	return &jobRepository{
		db:  db,
		log: logger.New("jobRepository"),
	}
}

func (r *jobRepository) AddImage(ctx context.Context, image *JobImage) error {
	log := r.log.Function("AddImage")

	if err := r.db.SQLWithContext(ctx).Create(image).Error; err != nil {
		return log.Err("failed to add job image", err, "bookingID", image.BookingID)
	}

	return nil
}

func (r *jobRepository) GetImages(ctx context.Context, bookingID uuid.UUID) ([]JobImage, error) {
	log := r.log.Function("GetImages")

	var images []JobImage
	if err := r.db.SQLWithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&images).Error; err != nil {
		return nil, log.Err("failed to list job images", err, "bookingID", bookingID)
	}

	return images, nil
}

// DeleteImage removes an image, scoped to its uploader.
func (r *jobRepository) DeleteImage(ctx context.Context, uploaderID, imageID uuid.UUID) error {
	log := r.log.Function("DeleteImage")

	result := r.db.SQLWithContext(ctx).
		Where("id = ? AND uploaded_by = ?", imageID, uploaderID).
		Delete(&JobImage{})
	if result.Error != nil {
		return log.Err("failed to delete job image", result.Error, "imageID", imageID)
	}

	if result.RowsAffected == 0 {
		return log.Err("job image not found", gorm.ErrRecordNotFound, "imageID", imageID)
	}

	return nil
}

func (r *jobRepository) AddMessage(ctx context.Context, message *JobMessage) error {
	log := r.log.Function("AddMessage")

	if err := r.db.SQLWithContext(ctx).Create(message).Error; err != nil {
		return log.Err("failed to add job message", err, "bookingID", message.BookingID)
	}

	return nil
}

func (r *jobRepository) GetMessages(ctx context.Context, bookingID uuid.UUID) ([]JobMessage, error) {
	log := r.log.Function("GetMessages")

	var messages []JobMessage
	if err := r.db.SQLWithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, log.Err("failed to list job messages", err, "bookingID", bookingID)
	}

	return messages, nil
}

func (r *jobRepository) MarkMessagesRead(
	ctx context.Context,
	bookingID uuid.UUID,
	byEmployee bool,
) error {
	log := r.log.Function("MarkMessagesRead")

	column := "read_by_customer"
	if byEmployee {
		column = "read_by_employee"
	}

	if err := r.db.SQLWithContext(ctx).
		Model(&JobMessage{}).
		Where("booking_id = ?", bookingID).
		Update(column, true).Error; err != nil {
		return log.Err("failed to mark messages read", err, "bookingID", bookingID)
	}

	return nil
}
