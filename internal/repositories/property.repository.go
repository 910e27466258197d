package repositories

import (
	"context"

	"renhold/internal/database"
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, ownerID, propertyID uuid.UUID) (*Property, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]Property, error)
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, ownerID, propertyID uuid.UUID) error
}

type propertyRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPropertyRepository(db database.DB) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: logger.New("propertyRepository"),
	}
}

func (r *propertyRepository) Create(ctx context.Context, property *Property) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(property).Error; err != nil {
		return log.Err("failed to create property", err, "ownerID", property.UserID)
	}

	return nil
}

// GetByID is owner scoped. A property belonging to someone else is
// indistinguishable from one that does not exist.
func (r *propertyRepository) GetByID(
	ctx context.Context,
	ownerID, propertyID uuid.UUID,
) (*Property, error) {
	log := r.log.Function("GetByID")

	var property Property
	if err := r.db.SQLWithContext(ctx).
		First(&property, "id = ? AND user_id = ?", propertyID, ownerID).Error; err != nil {
		return nil, log.Err("failed to get property", err, "propertyID", propertyID, "ownerID", ownerID)
	}

	return &property, nil
}

func (r *propertyRepository) GetByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]Property, error) {
	log := r.log.Function("GetByOwner")

	var properties []Property
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error; err != nil {
		return nil, log.Err("failed to list properties", err, "ownerID", ownerID)
	}

	return properties, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *Property) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(property).Error; err != nil {
		return log.Err("failed to update property", err, "propertyID", property.ID)
	}

	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, ownerID, propertyID uuid.UUID) error {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).
		Where("id = ? AND user_id = ?", propertyID, ownerID).
		Delete(&Property{})
	if result.Error != nil {
		return log.Err("failed to delete property", result.Error, "propertyID", propertyID)
	}

	if result.RowsAffected == 0 {
		return log.Err("property not found", gorm.ErrRecordNotFound, "propertyID", propertyID)
	}

	return nil
}
