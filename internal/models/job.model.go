package models

import (
	"github.com/google/uuid"
)

type ImageType string

const (
	ImageBefore ImageType = "before"
	ImageAfter  ImageType = "after"
)

func (t ImageType) Valid() bool {
	return t == ImageBefore || t == ImageAfter
}

// JobImage is a before/after photograph attached to a booking. Immutable once
// created; only the uploader may delete it.
type JobImage struct {
	BaseUUIDModel
	BookingID  uuid.UUID `gorm:"type:uuid;not null;index" json:"bookingId"`
	ImageType  ImageType `gorm:"type:text;not null"       json:"imageType"`
	ImageURL   string    `gorm:"type:text;not null"       json:"imageUrl"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null"       json:"uploadedBy"`
}

type MessageType string

const (
	MessageText         MessageType = "text"
	MessageImage        MessageType = "image"
	MessageStatusUpdate MessageType = "status_update"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageImage, MessageStatusUpdate:
		return true
	}
	return false
}

// JobMessage is a chat message tied to a booking. Append-only.
type JobMessage struct {
	BaseUUIDModel
	BookingID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"bookingId"`
	SenderID       uuid.UUID   `gorm:"type:uuid;not null"       json:"senderId"`
	Message        string      `gorm:"type:text;not null"       json:"message"`
	MessageType    MessageType `gorm:"type:text;not null"       json:"messageType"`
	ReadByCustomer bool        `gorm:"type:bool;default:false"  json:"readByCustomer"`
	ReadByEmployee bool        `gorm:"type:bool;default:false"  json:"readByEmployee"`
}
