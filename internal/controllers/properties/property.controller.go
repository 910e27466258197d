package propertyController

import (
	"context"
	"fmt"

	"renhold/internal/apperrors"
	"renhold/internal/logger"
	. "renhold/internal/models"
	"renhold/internal/repositories"
	"renhold/internal/sanitize"

	"github.com/google/uuid"
)

type PropertyRequest struct {
	Name         string `json:"name"              validate:"required"`
	Address      string `json:"address"           validate:"required"`
	Type         string `json:"type"              validate:"required"`
	Rooms        *int   `json:"rooms,omitempty"`
	Bedrooms     *int   `json:"bedrooms,omitempty"`
	Bathrooms    *int   `json:"bathrooms,omitempty"`
	SquareMeters *int   `json:"squareMeters,omitempty"`
	Windows      *int   `json:"windows,omitempty"`
	Floors       *int   `json:"floors,omitempty"`
	HasPets      bool   `json:"hasPets"`
	Balcony      bool   `json:"balcony"`
	Garden       bool   `json:"garden"`
	Parking      bool   `json:"parking"`
	Elevator     bool   `json:"elevator"`
	Notes        string `json:"notes,omitempty"`
}

type PropertyControllerInterface interface {
	Create(ctx context.Context, user *User, request *PropertyRequest) (*Property, error)
	GetAll(ctx context.Context, user *User) ([]Property, error)
	Get(ctx context.Context, user *User, propertyID uuid.UUID) (*Property, error)
	Update(ctx context.Context, user *User, propertyID uuid.UUID, request *PropertyRequest) (*Property, error)
	Delete(ctx context.Context, user *User, propertyID uuid.UUID) error
}

type PropertyController struct {
	propertyRepo repositories.PropertyRepository
	log          logger.Logger
}

func New(propertyRepo repositories.PropertyRepository) PropertyControllerInterface {
	return &PropertyController{
		propertyRepo: propertyRepo,
		log:          logger.New("propertyController"),
	}
}

func (c *PropertyController) validate(request *PropertyRequest) error {
	if sanitize.Text(request.Name) == "" {
		return fmt.Errorf("%w: property name is required", apperrors.ErrValidation)
	}

	if sanitize.Address(request.Address) == "" {
		return fmt.Errorf("%w: property address is required", apperrors.ErrValidation)
	}

	if !PropertyType(request.Type).Valid() {
		return fmt.Errorf("%w: unknown property type %q", apperrors.ErrValidation, request.Type)
	}

	for name, value := range map[string]*int{
		"rooms":        request.Rooms,
		"bedrooms":     request.Bedrooms,
		"bathrooms":    request.Bathrooms,
		"squareMeters": request.SquareMeters,
		"windows":      request.Windows,
		"floors":       request.Floors,
	} {
		if value != nil && (*value < 0 || *value > 10000) {
			return fmt.Errorf("%w: %s is out of range", apperrors.ErrValidation, name)
		}
	}

	return nil
}

func (c *PropertyController) apply(property *Property, request *PropertyRequest) {
	property.Name = sanitize.Text(request.Name)
	property.Address = sanitize.Address(request.Address)
	property.Type = PropertyType(request.Type)
	property.Rooms = request.Rooms
	property.Bedrooms = request.Bedrooms
	property.Bathrooms = request.Bathrooms
	property.SquareMeters = request.SquareMeters
	property.Windows = request.Windows
	property.Floors = request.Floors
	property.HasPets = request.HasPets
	property.Balcony = request.Balcony
	property.Garden = request.Garden
	property.Parking = request.Parking
	property.Elevator = request.Elevator
	property.Notes = sanitize.Notes(request.Notes)
}

func (c *PropertyController) Create(
	ctx context.Context,
	user *User,
	request *PropertyRequest,
) (*Property, error) {
	log := c.log.Function("Create")

	if err := c.validate(request); err != nil {
		return nil, err
	}

	property := Property{UserID: user.ID}
	c.apply(&property, request)

	if err := c.propertyRepo.Create(ctx, &property); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Property created", "propertyID", property.ID, "userID", user.ID)
	return &property, nil
}

func (c *PropertyController) GetAll(ctx context.Context, user *User) ([]Property, error) {
	properties, err := c.propertyRepo.GetByOwner(ctx, user.ID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}
	return properties, nil
}

func (c *PropertyController) Get(
	ctx context.Context,
	user *User,
	propertyID uuid.UUID,
) (*Property, error) {
	property, err := c.propertyRepo.GetByID(ctx, user.ID, propertyID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}
	return property, nil
}

func (c *PropertyController) Update(
	ctx context.Context,
	user *User,
	propertyID uuid.UUID,
	request *PropertyRequest,
) (*Property, error) {
	log := c.log.Function("Update")

	if err := c.validate(request); err != nil {
		return nil, err
	}

	// Scoped read, so a foreign property reads as not found.
	property, err := c.propertyRepo.GetByID(ctx, user.ID, propertyID)
	if err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	c.apply(property, request)

	if err := c.propertyRepo.Update(ctx, property); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	log.Info("Property updated", "propertyID", property.ID, "userID", user.ID)
	return property, nil
}

func (c *PropertyController) Delete(
	ctx context.Context,
	user *User,
	propertyID uuid.UUID,
) error {
	log := c.log.Function("Delete")

	if err := c.propertyRepo.Delete(ctx, user.ID, propertyID); err != nil {
		return apperrors.FromDatabase(err)
	}

	log.Info("Property deleted", "propertyID", propertyID, "userID", user.ID)
	return nil
}
