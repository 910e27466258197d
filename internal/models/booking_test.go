package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, allowed: true},
		{name: "pending to in_progress", from: StatusPending, to: StatusInProgress, allowed: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, allowed: true},
		{name: "pending to completed skips a state", from: StatusPending, to: StatusCompleted, allowed: false},
		{name: "confirmed to in_progress", from: StatusConfirmed, to: StatusInProgress, allowed: true},
		{name: "confirmed to cancelled", from: StatusConfirmed, to: StatusCancelled, allowed: true},
		{name: "confirmed to completed skips a state", from: StatusConfirmed, to: StatusCompleted, allowed: false},
		{name: "confirmed back to pending", from: StatusConfirmed, to: StatusPending, allowed: false},
		{name: "in_progress to completed", from: StatusInProgress, to: StatusCompleted, allowed: true},
		{name: "in_progress to cancelled", from: StatusInProgress, to: StatusCancelled, allowed: true},
		{name: "in_progress back to confirmed", from: StatusInProgress, to: StatusConfirmed, allowed: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusInProgress, allowed: false},
		{name: "completed cannot be cancelled", from: StatusCompleted, to: StatusCancelled, allowed: false},
		{name: "cancelled is terminal", from: StatusCancelled, to: StatusPending, allowed: false},
		{name: "unknown status permits nothing", from: BookingStatus("archived"), to: StatusPending, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestBooking_ScheduledAt(t *testing.T) {
	date := "2025-06-15"
	clock := "14:30"

	booking := Booking{ScheduledDate: &date, ScheduledTime: &clock}
	at, ok := booking.ScheduledAt()

	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC), at)
}

func TestBooking_ScheduledAt_MissingParts(t *testing.T) {
	date := "2025-06-15"

	tests := []struct {
		name    string
		booking Booking
	}{
		{name: "no date or time", booking: Booking{}},
		{name: "date only", booking: Booking{ScheduledDate: &date}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.booking.ScheduledAt()
			assert.False(t, ok)
		})
	}
}

func TestBooking_ScheduledAt_Malformed(t *testing.T) {
	date := "15/06/2025"
	clock := "2pm"

	booking := Booking{ScheduledDate: &date, ScheduledTime: &clock}
	_, ok := booking.ScheduledAt()

	assert.False(t, ok)
}

func TestUser_RoleHelpers(t *testing.T) {
	customer := User{Roles: []UserRole{{Role: RoleCustomer}}}
	employee := User{Roles: []UserRole{{Role: RoleEmployee}}}
	admin := User{Roles: []UserRole{{Role: RoleCustomer}, {Role: RoleAdmin}}}

	assert.False(t, customer.IsEmployee())
	assert.True(t, employee.IsEmployee())
	assert.True(t, admin.IsEmployee())
	assert.True(t, admin.IsAdmin())
	assert.False(t, employee.IsAdmin())
	assert.True(t, admin.HasRole(RoleCustomer))
}
