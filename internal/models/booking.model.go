package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// bookingTransitions is the legal status graph. Statuses only move forward;
// cancelled is reachable from any non-terminal status.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending:    {StatusConfirmed: true, StatusInProgress: true, StatusCancelled: true},
	StatusConfirmed:  {StatusInProgress: true, StatusCancelled: true},
	StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the status graph permits moving from s to
// next. Terminal statuses permit nothing.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	allowed, ok := bookingTransitions[s]
	if !ok {
		return false
	}
	return allowed[next]
}

// Booking is a request to clean a Property on a given date/time.
type Booking struct {
	BaseUUIDModel
	UserID              uuid.UUID     `gorm:"type:uuid;not null;index"   json:"userId"`
	PropertyID          uuid.UUID     `gorm:"type:uuid;not null;index"   json:"propertyId"`
	ServiceType         string        `gorm:"type:text;not null"         json:"serviceType"`
	Status              BookingStatus `gorm:"type:text;not null;index"   json:"status"`
	ScheduledDate       *string       `gorm:"type:date"                  json:"scheduledDate,omitempty"`
	ScheduledTime       *string       `gorm:"type:text"                  json:"scheduledTime,omitempty"`
	EstimatedDuration   *int          `gorm:"type:int"                   json:"estimatedDuration,omitempty"`
	EstimatedPriceMin   *int64        `gorm:"type:bigint"                json:"estimatedPriceMin,omitempty"`
	EstimatedPriceMax   *int64        `gorm:"type:bigint"                json:"estimatedPriceMax,omitempty"`
	SpecialInstructions string        `gorm:"type:text"                  json:"specialInstructions,omitempty"`
	AssignedEmployeeID  *uuid.UUID    `gorm:"type:uuid;index"            json:"assignedEmployeeId,omitempty"`
	StartTime           *time.Time    `gorm:"type:timestamp"             json:"startTime,omitempty"`
	EndTime             *time.Time    `gorm:"type:timestamp"             json:"endTime,omitempty"`
	ActualDuration      *int          `gorm:"type:int"                   json:"actualDuration,omitempty"`
	ApprovedAt          *time.Time    `gorm:"type:timestamp"             json:"approvedAt,omitempty"`
	ApprovedBy          *uuid.UUID    `gorm:"type:uuid"                  json:"approvedBy,omitempty"`
	EmployeeNotes       string        `gorm:"type:text"                  json:"employeeNotes,omitempty"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	// Callers never choose the initial status.
	b.Status = StatusPending
	return nil
}

// ScheduledAt combines the scheduled date and time into a timestamp, or
// returns false when either part is missing or malformed.
func (b *Booking) ScheduledAt() (time.Time, bool) {
	if b.ScheduledDate == nil || b.ScheduledTime == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02 15:04", *b.ScheduledDate+" "+*b.ScheduledTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EmployeeBooking is the employee-facing view of a booking joined with
// property and customer profile data for display.
type EmployeeBooking struct {
	Booking
	CustomerName         string `json:"customerName"`
	PropertyName         string `json:"propertyName"`
	PropertyAddress      string `json:"propertyAddress"`
	PropertyType         string `json:"propertyType"`
	PropertyRooms        int    `json:"propertyRooms"`
	PropertySquareMeters int    `json:"propertySquareMeters"`
	PropertyBathrooms    int    `json:"propertyBathrooms"`
	PropertyBedrooms     int    `json:"propertyBedrooms"`
	PropertyFloors       int    `json:"propertyFloors"`
}
