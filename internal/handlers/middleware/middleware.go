package middleware

import (
	"renhold/config"
	"renhold/internal/database"
	"renhold/internal/events"
	"renhold/internal/logger"
	"renhold/internal/repositories"
	"renhold/internal/services"
)

type Middleware struct {
	DB             database.DB
	userRepo       repositories.UserRepository
	sessionService *services.SessionService
	Config         config.Config
	log            logger.Logger
	eventBus       *events.EventBus
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	repos repositories.Repository,
	sessionService *services.SessionService,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:             db,
		userRepo:       repos.User,
		sessionService: sessionService,
		Config:         config,
		log:            log,
		eventBus:       eventBus,
	}
}
