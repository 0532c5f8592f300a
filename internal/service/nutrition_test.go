package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/virtusia/backend/internal/models"
)

func insertMeal(t *testing.T, db *gorm.DB, m models.Meal) {
	t.Helper()
	require.NoError(t, db.Create(&m).Error)
}

func TestDailySummary_NoMeals(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "empty@example.com")
	svc := NewNutritionService(db)

	summary, err := svc.DailySummary(context.Background(), user.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.TotalCalories)
	assert.Equal(t, 0.0, summary.TotalProtein)
	assert.Equal(t, 0, summary.MealsCount)
	assert.Equal(t, 0.0, summary.CalorieProgress)
	assert.Equal(t, models.DefaultDailyCalorieGoal, summary.DailyCalorieGoal)

	// Every meal slot is present with a zero count.
	for _, mt := range models.MealTypes {
		count, ok := summary.MealsByType[string(mt)]
		assert.True(t, ok)
		assert.Equal(t, 0, count)
	}
}

func TestDailySummary_SumsAndProgress(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "daily@example.com")
	svc := NewNutritionService(db)

	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("user_id = ?", user.ID).
		Update("daily_calorie_goal", 2000).Error)

	today := time.Now().UTC()
	insertMeal(t, db, models.Meal{
		UserID:        user.ID,
		MealType:      models.MealTypeBreakfast,
		TotalCalories: floatPtr(500),
		TotalProtein:  floatPtr(30),
		CreatedAt:     today,
	})
	insertMeal(t, db, models.Meal{
		UserID:        user.ID,
		MealType:      models.MealTypeLunch,
		TotalCalories: floatPtr(700),
		TotalFat:      floatPtr(25),
		CreatedAt:     today,
	})
	// Yesterday's meal must not leak into today.
	insertMeal(t, db, models.Meal{
		UserID:        user.ID,
		MealType:      models.MealTypeDinner,
		TotalCalories: floatPtr(900),
		CreatedAt:     today.AddDate(0, 0, -1),
	})

	summary, err := svc.DailySummary(context.Background(), user.ID, today)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, summary.TotalCalories)
	assert.Equal(t, 30.0, summary.TotalProtein)
	assert.Equal(t, 25.0, summary.TotalFat)
	assert.Equal(t, 2, summary.MealsCount)
	assert.Equal(t, 1, summary.MealsByType["breakfast"])
	assert.Equal(t, 1, summary.MealsByType["lunch"])
	assert.Equal(t, 0, summary.MealsByType["dinner"])
	assert.InDelta(t, 60.0, summary.CalorieProgress, 1e-9)
}

func TestDailySummary_ZeroCalorieGoal(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "zerogoal@example.com")
	svc := NewNutritionService(db)

	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("user_id = ?", user.ID).
		Update("daily_calorie_goal", 0).Error)

	insertMeal(t, db, models.Meal{
		UserID:        user.ID,
		MealType:      models.MealTypeLunch,
		TotalCalories: floatPtr(800),
		CreatedAt:     time.Now().UTC(),
	})

	summary, err := svc.DailySummary(context.Background(), user.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.DailyCalorieGoal)
	assert.Equal(t, 0.0, summary.CalorieProgress, "a non-positive goal never divides")
}

func TestDailySummary_NilTotalsCountAsZero(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "niltotals@example.com")
	svc := NewNutritionService(db)

	insertMeal(t, db, models.Meal{
		UserID:    user.ID,
		MealType:  models.MealTypeSnack,
		CreatedAt: time.Now().UTC(),
	})

	summary, err := svc.DailySummary(context.Background(), user.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.MealsCount)
	assert.Equal(t, 0.0, summary.TotalCalories)
}

func TestPeriodSummary_InvalidRange(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "range@example.com")
	svc := NewNutritionService(db)

	now := time.Now().UTC()
	_, err := svc.PeriodSummary(context.Background(), user.ID, now, now.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPeriodSummary_InclusiveRange(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "period@example.com")
	svc := NewNutritionService(db)

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -1)

	insertMeal(t, db, models.Meal{
		UserID:        user.ID,
		MealType:      models.MealTypeBreakfast,
		TotalCalories: floatPtr(400),
		HealthScore:   floatPtr(80),
		CreatedAt:     start,
	})
	insertMeal(t, db, models.Meal{
		UserID:        user.ID,
		MealType:      models.MealTypeDinner,
		TotalCalories: floatPtr(600),
		HealthScore:   floatPtr(60),
		CreatedAt:     end,
	})
	// Outside the range on both ends.
	insertMeal(t, db, models.Meal{
		UserID:        user.ID,
		MealType:      models.MealTypeLunch,
		TotalCalories: floatPtr(999),
		CreatedAt:     start.AddDate(0, 0, -2),
	})

	summary, err := svc.PeriodSummary(context.Background(), user.ID, start, end)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, summary.TotalCalories)
	assert.Equal(t, 2, summary.MealsCount)
	assert.Equal(t, 70.0, summary.AverageHealthScore)
	// Two calendar days inclusive.
	assert.Equal(t, 500.0, summary.CaloriesPerDay)
}

func TestPeriodSummary_SingleDay(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "singleday@example.com")
	svc := NewNutritionService(db)

	now := time.Now().UTC()
	insertMeal(t, db, models.Meal{
		UserID:        user.ID,
		MealType:      models.MealTypeLunch,
		TotalCalories: floatPtr(650),
		CreatedAt:     now,
	})

	summary, err := svc.PeriodSummary(context.Background(), user.ID, now, now)
	require.NoError(t, err)

	assert.Equal(t, 650.0, summary.TotalCalories)
	assert.Equal(t, 650.0, summary.CaloriesPerDay)
	assert.Equal(t, 0.0, summary.AverageHealthScore)
}
