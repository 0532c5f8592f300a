package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/virtusia/backend/internal/models"
)

// newTestDB opens an isolated in-memory database and migrates the
// schema. Each test gets its own named instance so parallel tests do
// not share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Food{},
		&models.Meal{},
		&models.MealFood{},
		&models.Goal{},
		&models.BodyMeasurement{},
	))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// newTestUser inserts a user with a bcrypt-hashed password and an empty
// profile, returning the user.
func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.UserProfile{UserID: user.ID}
	require.NoError(t, db.Create(&profile).Error)

	return &user
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
