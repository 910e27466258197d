package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationReminder         NotificationType = "reminder"
	NotificationGeneral          NotificationType = "general"
)

// Notification is a delivery request for a lifecycle event. Immediate
// notifications are pushed as they are created; rows with a future
// ScheduledFor are picked up by the reminder job. Delivery is fire-and-forget;
// the sink owns presentation and permission handling.
type Notification struct {
	BaseUUIDModel
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"userId"`
	Type         NotificationType `gorm:"type:text;not null"       json:"type"`
	Title        string           `gorm:"type:text;not null"       json:"title"`
	Message      string           `gorm:"type:text;not null"       json:"message"`
	ScheduledFor *time.Time       `gorm:"type:timestamp;index"     json:"scheduledFor,omitempty"`
	Sent         bool             `gorm:"type:bool;default:false"  json:"sent"`
	Payload      datatypes.JSON   `gorm:"type:jsonb"               json:"payload,omitempty"`
}
