package database

import (
	"renhold/internal/logger"
	"renhold/internal/models"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []any{
		&models.User{},
		&models.UserRole{},
		&models.Property{},
		&models.Booking{},
		&models.JobImage{},
		&models.JobMessage{},
		&models.Notification{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_bookings_user_status ON bookings(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_schedule ON bookings(scheduled_date, scheduled_time)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_due ON notifications(scheduled_for) WHERE sent = false",
		"CREATE INDEX IF NOT EXISTS idx_job_messages_booking_created ON job_messages(booking_id, created_at)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
			// Continue with other indexes even if one fails
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
