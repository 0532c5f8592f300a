package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalType classifies what a goal tracks.
type GoalType string

const (
	GoalTypeWeightLoss           GoalType = "weight_loss"
	GoalTypeMuscleGain           GoalType = "muscle_gain"
	GoalTypeMaintenance          GoalType = "maintenance"
	GoalTypeFitnessImprovement   GoalType = "fitness_improvement"
	GoalTypeNutritionImprovement GoalType = "nutrition_improvement"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeWeightLoss, GoalTypeMuscleGain, GoalTypeMaintenance,
		GoalTypeFitnessImprovement, GoalTypeNutritionImprovement:
		return true
	}
	return false
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

// Goal is a user objective. TargetValue and CurrentValue are nullable:
// nil means unset, which is not the same as a stored zero.
type Goal struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalType     GoalType       `gorm:"size:30;not null;index" json:"goal_type"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	TargetValue  *float64       `json:"target_value"`
	CurrentValue *float64       `json:"current_value"`
	Unit         string         `gorm:"size:20" json:"unit,omitempty"`
	TargetDate   *time.Time     `json:"target_date"`
	Status       GoalStatus     `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Goal) TableName() string {
	return "goals"
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// BodyMeasurement is an immutable snapshot of a user's body metrics.
// There is no update path; corrections are new rows.
type BodyMeasurement struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Weight             *float64  `json:"weight"`
	BodyFatPercentage  *float64  `json:"body_fat_percentage"`
	MuscleMass         *float64  `json:"muscle_mass"`
	WaistCircumference *float64  `json:"waist_circumference"`
	ChestCircumference *float64  `json:"chest_circumference"`
	ArmCircumference   *float64  `json:"arm_circumference"`
	HipCircumference   *float64  `json:"hip_circumference"`
	Notes              string    `gorm:"type:text" json:"notes,omitempty"`
	MeasuredAt         time.Time `gorm:"index" json:"measured_at"`
}

func (BodyMeasurement) TableName() string {
	return "body_measurements"
}

func (m *BodyMeasurement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.MeasuredAt.IsZero() {
		m.MeasuredAt = time.Now().UTC()
	}
	return nil
}
