package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealType is the meal slot a logged meal belongs to.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// MealTypes lists every recognized meal type, in display order.
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

func (t MealType) Valid() bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// Meal is a logged meal. The Total* fields are caller-supplied and
// authoritative; they are never recomputed from the food line items.
type Meal struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	MealType      MealType       `gorm:"size:20;not null;index" json:"meal_type"`
	ImageURL      string         `gorm:"size:255" json:"image_url,omitempty"`
	TotalCalories *float64       `json:"total_calories"`
	TotalProtein  *float64       `json:"total_protein"`
	TotalCarbs    *float64       `json:"total_carbs"`
	TotalFat      *float64       `json:"total_fat"`
	TotalFiber    *float64       `json:"total_fiber"`
	HealthScore   *float64       `json:"health_score"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Foods         []MealFood     `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"foods"`
}

func (Meal) TableName() string {
	return "meals"
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Food is a catalog entry with a per-100g macro profile.
type Food struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:200;not null;index" json:"name"`
	CaloriesPer100g float64   `gorm:"not null" json:"calories_per_100g"`
	ProteinPer100g  float64   `gorm:"not null" json:"protein_per_100g"`
	CarbsPer100g    float64   `gorm:"not null" json:"carbs_per_100g"`
	FatPer100g      float64   `gorm:"not null" json:"fat_per_100g"`
	FiberPer100g    *float64  `json:"fiber_per_100g"`
	Source          string    `gorm:"size:50" json:"source,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Food) TableName() string {
	return "foods"
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// MealFood is a line item linking a meal to a food with a quantity.
type MealFood struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MealID   uuid.UUID `gorm:"type:uuid;not null;index" json:"meal_id"`
	FoodID   uuid.UUID `gorm:"type:uuid;not null;index" json:"food_id"`
	Quantity float64   `gorm:"not null" json:"quantity"`
	Unit     string    `gorm:"size:20;default:'g'" json:"unit"`
	Food     *Food     `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}

func (MealFood) TableName() string {
	return "meal_foods"
}

func (mf *MealFood) BeforeCreate(tx *gorm.DB) error {
	if mf.ID == uuid.Nil {
		mf.ID = uuid.New()
	}
	return nil
}

// CalculatedCalories derives calories from the food profile and quantity.
func (mf *MealFood) CalculatedCalories() float64 {
	if mf.Food == nil {
		return 0
	}
	return mf.Food.CaloriesPer100g * mf.Quantity / 100
}

// CalculatedProtein derives protein grams from the food profile and quantity.
func (mf *MealFood) CalculatedProtein() float64 {
	if mf.Food == nil {
		return 0
	}
	return mf.Food.ProteinPer100g * mf.Quantity / 100
}

// CalculatedCarbs derives carb grams from the food profile and quantity.
func (mf *MealFood) CalculatedCarbs() float64 {
	if mf.Food == nil {
		return 0
	}
	return mf.Food.CarbsPer100g * mf.Quantity / 100
}

// CalculatedFat derives fat grams from the food profile and quantity.
func (mf *MealFood) CalculatedFat() float64 {
	if mf.Food == nil {
		return 0
	}
	return mf.Food.FatPer100g * mf.Quantity / 100
}
