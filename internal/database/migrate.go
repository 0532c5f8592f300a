package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/virtusia/backend/internal/models"
)

// Migrate creates or updates the schema for all persisted models.
// Order matters: referenced tables first.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Food{},
		&models.Meal{},
		&models.MealFood{},
		&models.Goal{},
		&models.BodyMeasurement{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
