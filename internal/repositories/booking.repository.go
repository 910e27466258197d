package repositories

import (
	"context"

	contextutil "renhold/internal/context"
	"renhold/internal/database"
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope captures who is asking. Customers only ever see their own rows;
// employees see everything.
type Scope struct {
	UserID   uuid.UUID
	Employee bool
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, scope Scope, bookingID uuid.UUID) (*Booking, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	GetAllForEmployees(ctx context.Context) ([]EmployeeBooking, error)
	UpdateFields(ctx context.Context, bookingID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, ownerID, bookingID uuid.UUID) error
}

type bookingRepository struct {
	db  database.DB
	log logger.Logger
}

func NewBookingRepository(db database.DB) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: logger.New("bookingRepository"),
	}
}

func (r *bookingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *bookingRepository) Create(ctx context.Context, booking *Booking) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(booking).Error; err != nil {
		return log.Err("failed to create booking", err,
			"userID", booking.UserID,
			"propertyID", booking.PropertyID,
		)
	}

	return nil
}

// GetByID applies the caller's scope. A booking outside the caller's scope
// reads as not found, never as forbidden.
func (r *bookingRepository) GetByID(
	ctx context.Context,
	scope Scope,
	bookingID uuid.UUID,
) (*Booking, error) {
	log := r.log.Function("GetByID")

	query := r.getDB(ctx).Preload("Property").Where("id = ?", bookingID)
	if !scope.Employee {
		query = query.Where("user_id = ?", scope.UserID)
	}

	var booking Booking
	if err := query.First(&booking).Error; err != nil {
		return nil, log.Err("failed to get booking", err, "bookingID", bookingID, "userID", scope.UserID)
	}

	return &booking, nil
}

func (r *bookingRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	log := r.log.Function("GetByUser")

	var bookings []Booking
	if err := r.getDB(ctx).
		Preload("Property").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, log.Err("failed to list bookings", err, "userID", userID)
	}

	return bookings, nil
}

func (r *bookingRepository) GetAllForEmployees(ctx context.Context) ([]EmployeeBooking, error) {
	log := r.log.Function("GetAllForEmployees")

	var bookings []EmployeeBooking
	if err := r.getDB(ctx).
		Table("bookings").
		Select(`bookings.*,
			users.full_name AS customer_name,
			properties.name AS property_name,
			properties.address AS property_address,
			properties.type AS property_type,
			COALESCE(properties.rooms, 0) AS property_rooms,
			COALESCE(properties.square_meters, 0) AS property_square_meters,
			COALESCE(properties.bathrooms, 0) AS property_bathrooms,
			COALESCE(properties.bedrooms, 0) AS property_bedrooms,
			COALESCE(properties.floors, 0) AS property_floors`).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("bookings.deleted_at IS NULL").
		Order("bookings.scheduled_date ASC NULLS LAST, bookings.created_at DESC").
		Scan(&bookings).Error; err != nil {
		return nil, log.Err("failed to list bookings for employees", err)
	}

	return bookings, nil
}

// UpdateFields writes only the listed columns, so transition updates never
// clobber concurrent edits to unrelated fields.
func (r *bookingRepository) UpdateFields(
	ctx context.Context,
	bookingID uuid.UUID,
	fields map[string]any,
) error {
	log := r.log.Function("UpdateFields")

	result := r.getDB(ctx).
		Model(&Booking{}).
		Where("id = ?", bookingID).
		Updates(fields)
	if result.Error != nil {
		return log.Err("failed to update booking", result.Error, "bookingID", bookingID)
	}

	if result.RowsAffected == 0 {
		return log.Err("booking not found", gorm.ErrRecordNotFound, "bookingID", bookingID)
	}

	return nil
}

// Delete soft-deletes a booking owned by ownerID. Employees never delete
// bookings; customers only remove their own.
func (r *bookingRepository) Delete(ctx context.Context, ownerID, bookingID uuid.UUID) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).
		Where("id = ? AND user_id = ?", bookingID, ownerID).
		Delete(&Booking{})
	if result.Error != nil {
		return log.Err("failed to delete booking", result.Error, "bookingID", bookingID)
	}

	if result.RowsAffected == 0 {
		return log.Err("booking not found", gorm.ErrRecordNotFound, "bookingID", bookingID)
	}

	return nil
}
