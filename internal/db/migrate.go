package db

import (
	"fmt"

	"github.com/hooksink/hooksink/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the GORM models managed by migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Message{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// Ready reports whether the database is reachable and the messages table
// exists. It never returns an error: any failure means not ready.
func Ready(conn *gorm.DB) bool {
	if conn == nil {
		return false
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return false
	}
	if err := sqlDB.Ping(); err != nil {
		return false
	}
	return conn.Migrator().HasTable(&models.Message{})
}
