package repositories

import (
	"context"
	"errors"
	"testing"

	"renhold/internal/database"
	. "renhold/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupBookingRepo(t *testing.T) (BookingRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewBookingRepository(database.DB{SQL: gormDB}), mock
}

func TestGetByID_CustomerScopeFiltersByOwner(t *testing.T) {
	repo, mock := setupBookingRepo(t)

	ownerID := uuid.New()
	bookingID := uuid.New()

	// The owner predicate must be part of the query itself, so a booking
	// owned by someone else reads as not found.
	mock.ExpectQuery(`SELECT (.+) FROM "bookings" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(bookingID, ownerID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "property_id", "status"}))

	scope := Scope{UserID: ownerID}
	_, err := repo.GetByID(context.Background(), scope, bookingID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_EmployeeScopeSkipsOwnerFilter(t *testing.T) {
	repo, mock := setupBookingRepo(t)

	ownerID := uuid.New()
	bookingID := uuid.New()
	propertyID := uuid.New()

	// No user_id predicate: the id column is followed directly by the soft
	// delete filter.
	mock.ExpectQuery(`SELECT (.+) FROM "bookings" WHERE id = \$1 AND "bookings"\."deleted_at" IS NULL`).
		WithArgs(bookingID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "property_id", "status"}).
			AddRow(bookingID.String(), ownerID.String(), propertyID.String(), string(StatusPending)))
	mock.ExpectQuery(`SELECT (.+) FROM "properties"`).
		WithArgs(propertyID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	scope := Scope{UserID: uuid.New(), Employee: true}
	booking, err := repo.GetByID(context.Background(), scope, bookingID)
	require.NoError(t, err)
	assert.Equal(t, bookingID, booking.ID)
	assert.Equal(t, ownerID, booking.UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUser_FiltersByOwner(t *testing.T) {
	repo, mock := setupBookingRepo(t)

	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "bookings" WHERE user_id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}))

	bookings, err := repo.GetByUser(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	assert.NoError(t, mock.ExpectationsWereMet())
}
