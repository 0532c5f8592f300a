package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	Refresh(ctx context.Context, userID uuid.UUID) (string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
}

// IMealService defines the interface for meal logging operations
type IMealService interface {
	SaveMeal(ctx context.Context, userID uuid.UUID, req *types.SaveMealRequest) (*models.Meal, error)
	GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error)
	ListMeals(ctx context.Context, userID uuid.UUID, filter MealFilter) ([]models.Meal, int64, error)
	DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error
	SearchFoods(ctx context.Context, query string, limit int) ([]models.Food, error)
}

// INutritionService defines the interface for nutrition aggregation
type INutritionService interface {
	DailySummary(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailySummary, error)
	PeriodSummary(ctx context.Context, userID uuid.UUID, startDate, endDate time.Time) (*types.PeriodSummary, error)
}

// IGoalService defines the interface for goal and measurement operations
type IGoalService interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, req *types.CreateGoalRequest) (*models.Goal, error)
	GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID, filter GoalFilter) ([]models.Goal, int64, error)
	UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, req *types.UpdateGoalRequest) (*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error
	GoalProgress(ctx context.Context, userID, goalID uuid.UUID) (*types.GoalProgress, error)
	RecordMeasurement(ctx context.Context, userID uuid.UUID, req *types.RecordMeasurementRequest) (*models.BodyMeasurement, error)
	ListMeasurements(ctx context.Context, userID uuid.UUID, filter MeasurementFilter) ([]models.BodyMeasurement, int64, error)
	MeasurementTrends(ctx context.Context, userID uuid.UUID, windowDays int) (*types.TrendReport, error)
}

// Interface guards
var (
	_ IAuthService      = (*AuthService)(nil)
	_ IProfileService   = (*ProfileService)(nil)
	_ IMealService      = (*MealService)(nil)
	_ INutritionService = (*NutritionService)(nil)
	_ IGoalService      = (*GoalService)(nil)
)
