package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/types"
)

// NutritionService aggregates meal nutrition over days and date ranges.
// It is pure read+reduce: no writes, no caches.
type NutritionService struct {
	db *gorm.DB
}

func NewNutritionService(db *gorm.DB) *NutritionService {
	return &NutritionService{db: db}
}

// dayStart truncates a timestamp to midnight UTC of its calendar day.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// DailySummary sums meal totals for one calendar day. Missing per-meal
// totals count as zero. Calorie progress is against the profile's daily
// goal, zero when the goal is not positive.
func (s *NutritionService) DailySummary(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailySummary, error) {
	start := dayStart(date)
	end := start.AddDate(0, 0, 1)

	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	summary := &types.DailySummary{
		Date:        start.Format("2006-01-02"),
		MealsCount:  len(meals),
		MealsByType: map[string]int{},
	}
	for _, t := range models.MealTypes {
		summary.MealsByType[string(t)] = 0
	}

	for i := range meals {
		m := &meals[i]
		summary.TotalCalories += deref(m.TotalCalories)
		summary.TotalProtein += deref(m.TotalProtein)
		summary.TotalCarbs += deref(m.TotalCarbs)
		summary.TotalFat += deref(m.TotalFat)
		summary.TotalFiber += deref(m.TotalFiber)
		summary.MealsByType[string(m.MealType)]++
	}

	summary.DailyCalorieGoal = s.calorieGoal(ctx, userID)
	if summary.DailyCalorieGoal > 0 {
		summary.CalorieProgress = summary.TotalCalories / float64(summary.DailyCalorieGoal) * 100
	}

	return summary, nil
}

// PeriodSummary sums meal totals over an inclusive date range and adds
// the average health score and calories per day.
func (s *NutritionService) PeriodSummary(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*types.PeriodSummary, error) {
	start := dayStart(startDate)
	end := dayStart(endDate)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end.AddDate(0, 0, 1)).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	summary := &types.PeriodSummary{
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		MealsCount: len(meals),
	}

	var healthTotal float64
	for i := range meals {
		m := &meals[i]
		summary.TotalCalories += deref(m.TotalCalories)
		summary.TotalProtein += deref(m.TotalProtein)
		summary.TotalCarbs += deref(m.TotalCarbs)
		summary.TotalFat += deref(m.TotalFat)
		summary.TotalFiber += deref(m.TotalFiber)
		healthTotal += deref(m.HealthScore)
	}

	if len(meals) > 0 {
		summary.AverageHealthScore = round1(healthTotal / float64(len(meals)))
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	summary.CaloriesPerDay = round1(summary.TotalCalories / float64(days))

	return summary, nil
}

// calorieGoal resolves the user's daily calorie goal, defaulting when
// the profile is absent or has no explicit goal.
func (s *NutritionService) calorieGoal(ctx context.Context, userID uuid.UUID) int {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.DefaultDailyCalorieGoal
	}
	return profile.CalorieGoal()
}
