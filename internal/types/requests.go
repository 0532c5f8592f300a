package types

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email               string   `json:"email" binding:"required,email"`
	Password            string   `json:"password" binding:"required,min=8"`
	FirstName           string   `json:"first_name" binding:"required"`
	LastName            string   `json:"last_name" binding:"required"`
	DateOfBirth         string   `json:"date_of_birth"`
	Gender              string   `json:"gender"`
	Height              *float64 `json:"height"`
	ActivityLevel       string   `json:"activity_level"`
	CurrentWeight       *float64 `json:"current_weight"`
	TargetWeight        *float64 `json:"target_weight"`
	DailyCalorieGoal    *int     `json:"daily_calorie_goal"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest is the body for POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest applies partial updates to a user profile.
type UpdateProfileRequest struct {
	FirstName           *string  `json:"first_name"`
	LastName            *string  `json:"last_name"`
	Height              *float64 `json:"height"`
	ActivityLevel       *string  `json:"activity_level"`
	CurrentWeight       *float64 `json:"current_weight"`
	TargetWeight        *float64 `json:"target_weight"`
	DailyCalorieGoal    *int     `json:"daily_calorie_goal"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	FitnessGoals        []string `json:"fitness_goals"`
}

// MealFoodInput is one food line item on a saved meal.
type MealFoodInput struct {
	Name            string   `json:"name" binding:"required"`
	Quantity        float64  `json:"quantity"`
	Unit            string   `json:"unit"`
	CaloriesPer100g float64  `json:"calories_per_100g"`
	ProteinPer100g  float64  `json:"protein_per_100g"`
	CarbsPer100g    float64  `json:"carbs_per_100g"`
	FatPer100g      float64  `json:"fat_per_100g"`
	FiberPer100g    *float64 `json:"fiber_per_100g"`
}

// SaveMealRequest is the body for POST /meals.
type SaveMealRequest struct {
	MealType      string          `json:"meal_type" binding:"required"`
	ImageURL      string          `json:"image_url"`
	TotalCalories *float64        `json:"total_calories"`
	TotalProtein  *float64        `json:"total_protein"`
	TotalCarbs    *float64        `json:"total_carbs"`
	TotalFat      *float64        `json:"total_fat"`
	TotalFiber    *float64        `json:"total_fiber"`
	HealthScore   *float64        `json:"health_score"`
	Foods         []MealFoodInput `json:"foods"`
}

// CreateGoalRequest is the body for POST /goals.
type CreateGoalRequest struct {
	GoalType     string   `json:"goal_type" binding:"required"`
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
	Unit         string   `json:"unit"`
	TargetDate   string   `json:"target_date"`
}

// UpdateGoalRequest applies partial updates to a goal. TargetDate
// distinguishes "absent" from an explicit null via TargetDateSet, which
// gin populates through the custom UnmarshalJSON below.
type UpdateGoalRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	TargetValue   *float64 `json:"target_value"`
	CurrentValue  *float64 `json:"current_value"`
	Unit          *string  `json:"unit"`
	Status        *string  `json:"status"`
	TargetDate    *string  `json:"target_date"`
	TargetDateSet bool     `json:"-"`
}

// UnmarshalJSON records whether target_date was present in the payload,
// so an explicit null can clear the date while absence leaves it alone.
func (r *UpdateGoalRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateGoalRequest
	var a alias
	if err := jsonUnmarshal(data, &a); err != nil {
		return err
	}
	*r = UpdateGoalRequest(a)
	r.TargetDateSet = jsonHasKey(data, "target_date")
	return nil
}

// RecordMeasurementRequest is the body for POST /goals/measurements.
type RecordMeasurementRequest struct {
	Weight             *float64 `json:"weight"`
	BodyFatPercentage  *float64 `json:"body_fat_percentage"`
	MuscleMass         *float64 `json:"muscle_mass"`
	WaistCircumference *float64 `json:"waist_circumference"`
	ChestCircumference *float64 `json:"chest_circumference"`
	ArmCircumference   *float64 `json:"arm_circumference"`
	HipCircumference   *float64 `json:"hip_circumference"`
	Notes              string   `json:"notes"`
}
