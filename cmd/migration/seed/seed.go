package seed

import (
	"renhold/config"
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func intPtr(i int) *int {
	return &i
}

type seedUser struct {
	Email    string
	FullName string
	Phone    string
	Password string
	Roles    []Role
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []seedUser{
		{
			Email:    "admin@renhold.no",
			FullName: "Administrator",
			Password: "password",
			Roles:    []Role{RoleCustomer, RoleEmployee, RoleAdmin},
		},
		{
			Email:    "ansatt@renhold.no",
			FullName: "Kari Nordmann",
			Phone:    "+4740000001",
			Password: "password",
			Roles:    []Role{RoleCustomer, RoleEmployee},
		},
		{
			Email:    "kunde@renhold.no",
			FullName: "Ola Nordmann",
			Phone:    "+4740000002",
			Password: "password",
			Roles:    []Role{RoleCustomer},
		},
	}

	var customer User
	for _, seed := range users {
		var existing User
		if err := db.First(&existing, "email = ?", seed.Email).Error; err == nil {
			log.Info("User already exists", "email", seed.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return log.Err("failed to hash seed password", err, "email", seed.Email)
		}

		user := User{
			Email:        seed.Email,
			FullName:     seed.FullName,
			Phone:        seed.Phone,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		for _, role := range seed.Roles {
			user.Roles = append(user.Roles, UserRole{Role: role})
		}

		log.Info("Seeding user", "email", seed.Email)
		if err := db.Create(&user).Error; err != nil {
			return log.Err("failed to create seed user", err, "email", seed.Email)
		}

		if seed.Email == "kunde@renhold.no" {
			customer = user
		}
	}

	if customer.ID == uuid.Nil {
		log.Info("Customer already seeded, skipping property")
		return nil
	}

	property := Property{
		UserID:       customer.ID,
		Name:         "Hjemme",
		Address:      "Storgata 1, 0155 Oslo",
		Type:         PropertyApartment,
		Rooms:        intPtr(3),
		Bathrooms:    intPtr(1),
		SquareMeters: intPtr(74),
		Windows:      intPtr(6),
		HasPets:      true,
	}

	log.Info("Seeding property", "name", property.Name)
	if err := db.Create(&property).Error; err != nil {
		return log.Err("failed to create seed property", err)
	}

	return nil
}
