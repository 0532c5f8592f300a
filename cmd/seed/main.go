// Command seed populates a development database with demo users, meals,
// goals and body measurements so the dashboard has something to show.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/virtusia/backend/config"
	"github.com/virtusia/backend/internal/database"
	"github.com/virtusia/backend/internal/models"
)

var sampleFoods = []models.Food{
	{Name: "Grilled Chicken Breast", CaloriesPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatPer100g: 3.6, Source: "seed"},
	{Name: "White Rice", CaloriesPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28, FatPer100g: 0.3, Source: "seed"},
	{Name: "Broccoli", CaloriesPer100g: 34, ProteinPer100g: 2.8, CarbsPer100g: 7, FatPer100g: 0.4, Source: "seed"},
	{Name: "Oatmeal", CaloriesPer100g: 389, ProteinPer100g: 16.9, CarbsPer100g: 66, FatPer100g: 6.9, Source: "seed"},
	{Name: "Banana", CaloriesPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 23, FatPer100g: 0.3, Source: "seed"},
	{Name: "Salmon Fillet", CaloriesPer100g: 208, ProteinPer100g: 20, CarbsPer100g: 0, FatPer100g: 13, Source: "seed"},
	{Name: "Greek Yogurt", CaloriesPer100g: 59, ProteinPer100g: 10, CarbsPer100g: 3.6, FatPer100g: 0.4, Source: "seed"},
	{Name: "Almonds", CaloriesPer100g: 579, ProteinPer100g: 21, CarbsPer100g: 22, FatPer100g: 50, Source: "seed"},
}

func main() {
	users := flag.Int("users", 5, "number of demo users to create")
	days := flag.Int("days", 30, "days of meal and measurement history per user")
	seed := flag.Int64("seed", 0, "fixed random seed, 0 for random")
	flag.Parse()

	logger := logrus.New()

	if *seed != 0 {
		gofakeit.Seed(*seed)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	foods, err := seedFoods(db)
	if err != nil {
		logger.WithError(err).Fatal("failed to seed foods")
	}

	for i := 0; i < *users; i++ {
		email := fmt.Sprintf("demo%d@virtusia.dev", i+1)
		if err := seedUser(db, email, foods, *days); err != nil {
			logger.WithError(err).WithField("email", email).Fatal("failed to seed user")
		}
		logger.WithField("email", email).Info("seeded user (password: demo-password)")
	}

	logger.Info("seeding complete")
}

func seedFoods(db *gorm.DB) ([]models.Food, error) {
	out := make([]models.Food, 0, len(sampleFoods))
	for _, f := range sampleFoods {
		var existing models.Food
		err := db.Where("name = ?", f.Name).First(&existing).Error
		if err == nil {
			out = append(out, existing)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err := db.Create(&f).Error; err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func seedUser(db *gorm.DB, email string, foods []models.Food, days int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	height := gofakeit.Float64Range(155, 195)
	currentWeight := gofakeit.Float64Range(60, 110)
	targetWeight := currentWeight - gofakeit.Float64Range(2, 12)
	calorieGoal := gofakeit.Number(1600, 2800)
	dob := gofakeit.DateRange(
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC),
	)

	user := models.User{
		Email:         email,
		PasswordHash:  string(hash),
		FirstName:     gofakeit.FirstName(),
		LastName:      gofakeit.LastName(),
		DateOfBirth:   &dob,
		Gender:        gofakeit.RandomString([]string{"male", "female", "other"}),
		HeightCm:      &height,
		ActivityLevel: gofakeit.RandomString([]string{"sedentary", "lightly_active", "moderately_active", "very_active"}),
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := models.UserProfile{
			UserID:              user.ID,
			CurrentWeight:       &currentWeight,
			TargetWeight:        &targetWeight,
			DailyCalorieGoal:    &calorieGoal,
			DietaryRestrictions: models.JSONBStringArray{},
			FitnessGoals:        models.JSONBStringArray{"stay consistent"},
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		if err := seedGoal(tx, user.ID, currentWeight, targetWeight); err != nil {
			return err
		}
		if err := seedMeals(tx, user.ID, foods, days); err != nil {
			return err
		}
		return seedMeasurements(tx, user.ID, currentWeight, days)
	})
}

func seedGoal(tx *gorm.DB, userID uuid.UUID, currentWeight, targetWeight float64) error {
	targetDate := time.Now().UTC().AddDate(0, 3, 0)
	goal := models.Goal{
		UserID:       userID,
		GoalType:     models.GoalTypeWeightLoss,
		Title:        "Reach target weight",
		Description:  gofakeit.Sentence(8),
		TargetValue:  &targetWeight,
		CurrentValue: &currentWeight,
		Unit:         "kg",
		TargetDate:   &targetDate,
		Status:       models.GoalStatusActive,
	}
	return tx.Create(&goal).Error
}

func seedMeals(tx *gorm.DB, userID uuid.UUID, foods []models.Food, days int) error {
	now := time.Now().UTC()
	for day := 0; day < days; day++ {
		date := now.AddDate(0, 0, -day)
		for _, mealType := range models.MealTypes {
			// Roughly one skipped slot per day keeps the data believable.
			if gofakeit.Number(0, 3) == 0 {
				continue
			}

			food := foods[gofakeit.Number(0, len(foods)-1)]
			quantity := gofakeit.Float64Range(80, 350)

			calories := food.CaloriesPer100g * quantity / 100
			protein := food.ProteinPer100g * quantity / 100
			carbs := food.CarbsPer100g * quantity / 100
			fat := food.FatPer100g * quantity / 100
			score := gofakeit.Float64Range(40, 95)

			meal := models.Meal{
				UserID:        userID,
				MealType:      mealType,
				TotalCalories: &calories,
				TotalProtein:  &protein,
				TotalCarbs:    &carbs,
				TotalFat:      &fat,
				HealthScore:   &score,
				CreatedAt:     date.Add(mealHour(mealType)),
			}
			if err := tx.Create(&meal).Error; err != nil {
				return err
			}

			mealFood := models.MealFood{
				MealID:   meal.ID,
				FoodID:   food.ID,
				Quantity: quantity,
				Unit:     "g",
			}
			if err := tx.Create(&mealFood).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func mealHour(t models.MealType) time.Duration {
	switch t {
	case models.MealTypeBreakfast:
		return 8 * time.Hour
	case models.MealTypeLunch:
		return 13 * time.Hour
	case models.MealTypeDinner:
		return 19 * time.Hour
	default:
		return 16 * time.Hour
	}
}

func seedMeasurements(tx *gorm.DB, userID uuid.UUID, currentWeight float64, days int) error {
	// Weekly weigh-ins drifting gently toward the present value.
	weeks := days / 7
	for week := weeks; week >= 0; week-- {
		weight := currentWeight + float64(week)*gofakeit.Float64Range(0.1, 0.5)
		bodyFat := gofakeit.Float64Range(12, 32)
		measuredAt := time.Now().UTC().AddDate(0, 0, -week*7)

		m := models.BodyMeasurement{
			UserID:            userID,
			Weight:            &weight,
			BodyFatPercentage: &bodyFat,
			MeasuredAt:        measuredAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}
