package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Email         string         `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash  string         `gorm:"size:128;not null" json:"-"`
	FirstName     string         `gorm:"size:50;not null" json:"first_name"`
	LastName      string         `gorm:"size:50;not null" json:"last_name"`
	DateOfBirth   *time.Time     `json:"date_of_birth"`
	Gender        string         `gorm:"size:10" json:"gender,omitempty"`
	HeightCm      *float64       `json:"height"`
	ActivityLevel string         `gorm:"size:30;default:'moderately_active'" json:"activity_level"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile carries the tunable targets that drive progress computation.
// DailyCalorieGoal is nullable; readers fall back to DefaultDailyCalorieGoal.
type UserProfile struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CurrentWeight       *float64         `json:"current_weight"`
	TargetWeight        *float64         `json:"target_weight"`
	DailyCalorieGoal    *int             `json:"daily_calorie_goal"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_restrictions"`
	FitnessGoals        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"fitness_goals"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DefaultDailyCalorieGoal is used when a profile has no explicit goal.
const DefaultDailyCalorieGoal = 2000

// CalorieGoal returns the profile's daily calorie goal or the default.
func (p *UserProfile) CalorieGoal() int {
	if p == nil || p.DailyCalorieGoal == nil {
		return DefaultDailyCalorieGoal
	}
	return *p.DailyCalorieGoal
}
