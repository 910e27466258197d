package bookingController

import (
	"context"
	"testing"
	"time"

	"renhold/internal/apperrors"
	"renhold/internal/logger"
	. "renhold/internal/models"
	"renhold/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// fakeBookingRepo backs controller tests with an in-memory row set. It
// honors the same scoping rule as the real repository.
type fakeBookingRepo struct {
	bookings map[uuid.UUID]*Booking
	updated  map[string]any
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *Booking) error {
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) GetByID(
	_ context.Context,
	scope repositories.Scope,
	bookingID uuid.UUID,
) (*Booking, error) {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !scope.Employee && booking.UserID != scope.UserID {
		return nil, gorm.ErrRecordNotFound
	}
	found := *booking
	return &found, nil
}

func (f *fakeBookingRepo) GetByUser(context.Context, uuid.UUID) ([]Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) GetAllForEmployees(context.Context) ([]EmployeeBooking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateFields(
	_ context.Context,
	bookingID uuid.UUID,
	fields map[string]any,
) error {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.updated = fields
	if status, ok := fields["status"].(BookingStatus); ok {
		booking.Status = status
	}
	if duration, ok := fields["actual_duration"].(int); ok {
		booking.ActualDuration = &duration
	}
	return nil
}

func (f *fakeBookingRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type fakeAnnouncer struct {
	announced []string
}

func (f *fakeAnnouncer) PublishBookingChanged(bookingID string, _ []uuid.UUID) error {
	f.announced = append(f.announced, bookingID)
	return nil
}

func customer() *User {
	return &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Roles:         []UserRole{{Role: RoleCustomer}},
	}
}

func employee() *User {
	return &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Roles:         []UserRole{{Role: RoleEmployee}},
	}
}

func TestScopeFor(t *testing.T) {
	cust := customer()
	scope := scopeFor(cust)
	assert.Equal(t, cust.ID, scope.UserID)
	assert.False(t, scope.Employee)

	emp := employee()
	scope = scopeFor(emp)
	assert.Equal(t, emp.ID, scope.UserID)
	assert.True(t, scope.Employee)

	admin := &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Roles:         []UserRole{{Role: RoleAdmin}},
	}
	assert.True(t, scopeFor(admin).Employee)
}

func TestCreate_ValidationErrors(t *testing.T) {
	controller := &BookingController{log: logger.New("bookingController")}
	user := customer()

	tests := []struct {
		name    string
		request CreateBookingRequest
	}{
		{
			name:    "missing service type",
			request: CreateBookingRequest{PropertyID: uuid.New()},
		},
		{
			name:    "missing property",
			request: CreateBookingRequest{ServiceType: "standard"},
		},
		{
			name: "malformed scheduled date",
			request: CreateBookingRequest{
				PropertyID:    uuid.New(),
				ServiceType:   "standard",
				ScheduledDate: strPtr("15.06.2025"),
			},
		},
		{
			name: "malformed scheduled time",
			request: CreateBookingRequest{
				PropertyID:    uuid.New(),
				ServiceType:   "standard",
				ScheduledDate: strPtr("2025-06-15"),
				ScheduledTime: strPtr("25:00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Create(context.Background(), user, &tt.request)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestTransitions_RequireEmployee(t *testing.T) {
	controller := &BookingController{log: logger.New("bookingController")}
	user := customer()
	bookingID := uuid.New()
	ctx := context.Background()

	_, err := controller.Confirm(ctx, user, bookingID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = controller.Start(ctx, user, bookingID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = controller.Complete(ctx, user, bookingID, &CompleteBookingRequest{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = controller.GetEmployeeBookings(ctx, user)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestElapsedMinutes(t *testing.T) {
	base := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		end      time.Time
		expected int
	}{
		{name: "exact minutes", end: base.Add(47 * time.Minute), expected: 47},
		{name: "rounds up from 36 seconds", end: base.Add(46*time.Minute + 36*time.Second), expected: 47},
		{name: "rounds down from 20 seconds", end: base.Add(47*time.Minute + 20*time.Second), expected: 47},
		{name: "zero span", end: base, expected: 0},
		{name: "end before start clamps to zero", end: base.Add(-5 * time.Minute), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, elapsedMinutes(base, tt.end))
		})
	}
}

func TestComplete_DerivesActualDuration(t *testing.T) {
	start := time.Now().Add(-47 * time.Minute)
	booking := &Booking{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		UserID:        uuid.New(),
		PropertyID:    uuid.New(),
		Status:        StatusInProgress,
		StartTime:     &start,
	}
	repo := &fakeBookingRepo{bookings: map[uuid.UUID]*Booking{booking.ID: booking}}
	announcer := &fakeAnnouncer{}
	controller := &BookingController{
		bookingRepo: repo,
		eventBus:    announcer,
		log:         logger.New("bookingController"),
	}

	completed, err := controller.Complete(
		context.Background(),
		employee(),
		booking.ID,
		&CompleteBookingRequest{},
	)
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, StatusCompleted, repo.updated["status"])
	assert.Equal(t, 47, repo.updated["actual_duration"])
	assert.NotNil(t, repo.updated["end_time"])
	_, hasNotes := repo.updated["employee_notes"]
	assert.False(t, hasNotes, "blank notes should not be written")

	assert.Equal(t, StatusCompleted, completed.Status)
	require.NotNil(t, completed.ActualDuration)
	assert.Equal(t, 47, *completed.ActualDuration)
	assert.Equal(t, []string{booking.ID.String()}, announcer.announced)
}

func TestComplete_ClampsFutureStartTime(t *testing.T) {
	start := time.Now().Add(10 * time.Minute)
	booking := &Booking{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		UserID:        uuid.New(),
		Status:        StatusInProgress,
		StartTime:     &start,
	}
	repo := &fakeBookingRepo{bookings: map[uuid.UUID]*Booking{booking.ID: booking}}
	controller := &BookingController{
		bookingRepo: repo,
		eventBus:    &fakeAnnouncer{},
		log:         logger.New("bookingController"),
	}

	_, err := controller.Complete(
		context.Background(),
		employee(),
		booking.ID,
		&CompleteBookingRequest{},
	)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.updated["actual_duration"])
}
