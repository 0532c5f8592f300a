package service

import "context"

// DetectedFood is one food item recognized in a meal photo.
type DetectedFood struct {
	Name            string  `json:"name"`
	Confidence      float64 `json:"confidence"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
}

// MealAnalysis is the structured output of a meal photo analysis.
type MealAnalysis struct {
	DetectedFoods   []DetectedFood `json:"detected_foods"`
	TotalCalories   float64        `json:"total_calories"`
	TotalProtein    float64        `json:"total_protein"`
	TotalCarbs      float64        `json:"total_carbs"`
	TotalFat        float64        `json:"total_fat"`
	HealthScore     float64        `json:"health_score"`
	Recommendations []string       `json:"recommendations"`
}

// MealAnalyzer produces a structured nutrition breakdown from a meal
// photo. The rest of the system only depends on this interface; the
// actual vision model lives upstream.
type MealAnalyzer interface {
	AnalyzeMealImage(ctx context.Context, imageData []byte) (*MealAnalysis, error)
}

// StaticMealAnalyzer is the deterministic placeholder analyzer used
// until the vision pipeline is integrated. It always reports the same
// sample plate so client flows can be exercised end to end.
type StaticMealAnalyzer struct{}

func NewStaticMealAnalyzer() *StaticMealAnalyzer {
	return &StaticMealAnalyzer{}
}

func (a *StaticMealAnalyzer) AnalyzeMealImage(ctx context.Context, imageData []byte) (*MealAnalysis, error) {
	return &MealAnalysis{
		DetectedFoods: []DetectedFood{
			{
				Name:            "Grilled Chicken",
				Confidence:      0.92,
				Quantity:        150,
				Unit:            "g",
				CaloriesPer100g: 165,
				ProteinPer100g:  31,
				CarbsPer100g:    0,
				FatPer100g:      3.6,
			},
			{
				Name:            "White Rice",
				Confidence:      0.88,
				Quantity:        100,
				Unit:            "g",
				CaloriesPer100g: 130,
				ProteinPer100g:  2.7,
				CarbsPer100g:    28,
				FatPer100g:      0.3,
			},
			{
				Name:            "Broccoli",
				Confidence:      0.85,
				Quantity:        80,
				Unit:            "g",
				CaloriesPer100g: 34,
				ProteinPer100g:  2.8,
				CarbsPer100g:    7,
				FatPer100g:      0.4,
			},
		},
		TotalCalories: 295,
		TotalProtein:  52.5,
		TotalCarbs:    33.6,
		TotalFat:      5.7,
		HealthScore:   85,
		Recommendations: []string{
			"Excellent source of lean protein!",
			"Add more colorful vegetables to widen the nutrient variety",
			"Consider swapping white rice for whole grain for extra fiber",
		},
	}, nil
}
