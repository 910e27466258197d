package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyType string

const (
	PropertyDetached   PropertyType = "detached"
	PropertyApartment  PropertyType = "apartment"
	PropertyTownhouse  PropertyType = "townhouse"
	PropertyCabin      PropertyType = "cabin"
	PropertyCommercial PropertyType = "commercial"
	PropertyOffice     PropertyType = "office"
	PropertyWarehouse  PropertyType = "warehouse"
	PropertyRetail     PropertyType = "retail"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyDetached, PropertyApartment, PropertyTownhouse, PropertyCabin,
		PropertyCommercial, PropertyOffice, PropertyWarehouse, PropertyRetail:
		return true
	}
	return false
}

// Property is a physical location to be cleaned. UserID is the owner and is
// immutable after creation.
type Property struct {
	BaseUUIDModel
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"userId"`
	Name         string       `gorm:"type:text;not null"       json:"name"`
	Address      string       `gorm:"type:text;not null"       json:"address"`
	Type         PropertyType `gorm:"type:text;not null"       json:"type"`
	Rooms        *int         `gorm:"type:int"                 json:"rooms,omitempty"`
	Bedrooms     *int         `gorm:"type:int"                 json:"bedrooms,omitempty"`
	Bathrooms    *int         `gorm:"type:int"                 json:"bathrooms,omitempty"`
	SquareMeters *int         `gorm:"type:int"                 json:"squareMeters,omitempty"`
	Windows      *int         `gorm:"type:int"                 json:"windows,omitempty"`
	Floors       *int         `gorm:"type:int"                 json:"floors,omitempty"`
	HasPets      bool         `gorm:"type:bool;default:false"  json:"hasPets"`
	Balcony      bool         `gorm:"type:bool;default:false"  json:"balcony"`
	Garden       bool         `gorm:"type:bool;default:false"  json:"garden"`
	Parking      bool         `gorm:"type:bool;default:false"  json:"parking"`
	Elevator     bool         `gorm:"type:bool;default:false"  json:"elevator"`
	Notes        string       `gorm:"type:text"                json:"notes,omitempty"`
}

func (p *Property) BeforeUpdate(tx *gorm.DB) error {
	// Owner reference is immutable after creation.
	if tx.Statement.Changed("UserID") {
		return gorm.ErrInvalidData
	}
	return nil
}
