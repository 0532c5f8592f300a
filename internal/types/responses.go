package types

import (
	"time"

	"github.com/google/uuid"
)

// DailySummary is the nutrition rollup for a single calendar day.
type DailySummary struct {
	Date             string         `json:"date"`
	TotalCalories    float64        `json:"total_calories"`
	TotalProtein     float64        `json:"total_protein"`
	TotalCarbs       float64        `json:"total_carbs"`
	TotalFat         float64        `json:"total_fat"`
	TotalFiber       float64        `json:"total_fiber"`
	DailyCalorieGoal int            `json:"daily_calorie_goal"`
	CalorieProgress  float64        `json:"calorie_progress"`
	MealsCount       int            `json:"meals_count"`
	MealsByType      map[string]int `json:"meals_by_type"`
}

// PeriodSummary is the nutrition rollup over an inclusive date range.
type PeriodSummary struct {
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalCalories      float64 `json:"total_calories"`
	TotalProtein       float64 `json:"total_protein"`
	TotalCarbs         float64 `json:"total_carbs"`
	TotalFat           float64 `json:"total_fat"`
	TotalFiber         float64 `json:"total_fiber"`
	MealsCount         int     `json:"meals_count"`
	AverageHealthScore float64 `json:"average_health_score"`
	CaloriesPerDay     float64 `json:"calories_per_day"`
}

// MetricTrend describes the direction of one body metric over a window.
type MetricTrend struct {
	Current    float64 `json:"current"`
	Initial    float64 `json:"initial"`
	Change     float64 `json:"change"`
	Trend      string  `json:"trend"`
	DataPoints int     `json:"data_points"`
}

// TrendReport maps metric names to their window trend. Metrics with
// fewer than two samples are absent.
type TrendReport struct {
	WindowDays        int                    `json:"window_days"`
	TotalMeasurements int                    `json:"total_measurements"`
	Trends            map[string]MetricTrend `json:"trends"`
}

// ProgressPoint is one synthesized weekly sample of a goal's value.
type ProgressPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Week  int     `json:"week"`
}

// GoalProgress is the detailed progress view of a single goal.
type GoalProgress struct {
	Percentage    float64         `json:"percentage"`
	DaysRemaining *int            `json:"days_remaining"`
	IsOnTrack     *bool           `json:"is_on_track"`
	History       []ProgressPoint `json:"history"`
}

// GoalWithProgress decorates a goal payload with its computed progress
// percentage, matching what list and detail endpoints return.
type GoalWithProgress struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	GoalType           string     `json:"goal_type"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	TargetValue        *float64   `json:"target_value"`
	CurrentValue       *float64   `json:"current_value"`
	Unit               string     `json:"unit,omitempty"`
	TargetDate         *time.Time `json:"target_date"`
	Status             string     `json:"status"`
	ProgressPercentage float64    `json:"progress_percentage"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
