package app

import (
	"context"
	"renhold/config"
	"renhold/internal/database"
	"renhold/internal/events"
	"renhold/internal/handlers/middleware"
	"renhold/internal/jobs"
	"renhold/internal/logger"
	"renhold/internal/repositories"
	"renhold/internal/services"
	"renhold/internal/websockets"

	adminController "renhold/internal/controllers/admin"
	authController "renhold/internal/controllers/auth"
	bookingController "renhold/internal/controllers/bookings"
	jobController "renhold/internal/controllers/jobs"
	propertyController "renhold/internal/controllers/properties"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService  *services.TransactionService
	SessionService      *services.SessionService
	EstimatorService    *services.EstimatorService
	NotificationService *services.NotificationService
	SchedulerService    *services.SchedulerService

	// Repositories
	Repos repositories.Repository

	// Controllers
	AuthController     authController.AuthControllerInterface
	PropertyController propertyController.PropertyControllerInterface
	BookingController  bookingController.BookingControllerInterface
	JobController      jobController.JobControllerInterface
	AdminController    adminController.AdminControllerInterface
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize repositories
	repos := repositories.New(db)

	// Initialize services
	transactionService := services.NewTransactionService(db)
	sessionService := services.NewSessionService(db, config)
	estimatorService := services.NewEstimatorService()
	notificationService := services.NewNotificationService(repos, eventBus)
	schedulerService := services.NewSchedulerService()

	websocket, err := websockets.New(db, eventBus, config, sessionService, repos.User)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, eventBus, config, repos, sessionService)
	authController := authController.New(repos.User, sessionService)
	propertyController := propertyController.New(repos.Property)
	bookingController := bookingController.New(
		repos,
		estimatorService,
		notificationService,
		transactionService,
		eventBus,
	)
	jobController := jobController.New(repos)
	adminController := adminController.New(repos.User)

	// Register jobs with scheduler if enabled
	if config.SchedulerEnabled {
		reminderJob := jobs.NewReminderJob(repos.Notification, notificationService, services.EveryMinute)
		if err := schedulerService.AddJob(reminderJob); err != nil {
			return &App{}, log.Err("failed to register reminder job", err)
		}
		log.Info("Registered reminder delivery job with scheduler")

		if err := schedulerService.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:            db,
		Config:              config,
		Middleware:          middleware,
		TransactionService:  transactionService,
		SessionService:      sessionService,
		EstimatorService:    estimatorService,
		NotificationService: notificationService,
		SchedulerService:    schedulerService,
		Repos:               repos,
		AuthController:      authController,
		PropertyController:  propertyController,
		BookingController:   bookingController,
		JobController:       jobController,
		AdminController:     adminController,
		Websocket:           websocket,
		EventBus:            eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.SessionService,
		a.EstimatorService,
		a.NotificationService,
		a.SchedulerService,
		a.AuthController,
		a.PropertyController,
		a.BookingController,
		a.JobController,
		a.AdminController,
		a.Repos.User,
		a.Repos.Property,
		a.Repos.Booking,
		a.Repos.Job,
		a.Repos.Notification,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.SchedulerService != nil {
		if closeErr := a.SchedulerService.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
