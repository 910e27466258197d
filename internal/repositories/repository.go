package repositories

import (
	"renhold/internal/database"
)

type Repository struct {
	User         UserRepository
	Property     PropertyRepository
	Booking      BookingRepository
	Job          JobRepository
	Notification NotificationRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:         NewUserRepository(db), // User repo needs cache for caching
		Property:     NewPropertyRepository(db),
		Booking:      NewBookingRepository(db),
		Job:          NewJobRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
