package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/types"
)

// MealService handles meal logging and food catalog lookups.
type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// MealFilter narrows meal listings. From/To bound the creation date
// (inclusive); zero values are ignored.
type MealFilter struct {
	From     *time.Time
	To       *time.Time
	MealType string
	Limit    int
	Offset   int
}

// SaveMeal stores a meal with its food line items. Foods are matched by
// name and created on first use, all within one transaction. The meal's
// totals are taken from the request as-is; nothing is recomputed.
func (s *MealService) SaveMeal(ctx context.Context, userID uuid.UUID, req *types.SaveMealRequest) (*models.Meal, error) {
	mealType := models.MealType(req.MealType)
	if !mealType.Valid() {
		return nil, ErrInvalidMealType
	}

	meal := models.Meal{
		UserID:        userID,
		MealType:      mealType,
		ImageURL:      req.ImageURL,
		TotalCalories: req.TotalCalories,
		TotalProtein:  req.TotalProtein,
		TotalCarbs:    req.TotalCarbs,
		TotalFat:      req.TotalFat,
		TotalFiber:    req.TotalFiber,
		HealthScore:   req.HealthScore,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		for _, item := range req.Foods {
			var food models.Food
			err := tx.Where("name = ?", item.Name).First(&food).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				food = models.Food{
					Name:            item.Name,
					CaloriesPer100g: item.CaloriesPer100g,
					ProteinPer100g:  item.ProteinPer100g,
					CarbsPer100g:    item.CarbsPer100g,
					FatPer100g:      item.FatPer100g,
					FiberPer100g:    item.FiberPer100g,
					Source:          "manual",
				}
				if err := tx.Create(&food).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			unit := item.Unit
			if unit == "" {
				unit = "g"
			}
			mealFood := models.MealFood{
				MealID:   meal.ID,
				FoodID:   food.ID,
				Quantity: item.Quantity,
				Unit:     unit,
			}
			if err := tx.Create(&mealFood).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetMeal(ctx, userID, meal.ID)
}

// GetMeal loads one meal with its food line items.
func (s *MealService) GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods.Food").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// ListMeals returns meals for a user, newest first, plus the unpaged total.
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID, filter MealFilter) ([]models.Meal, int64, error) {
	if filter.MealType != "" && !models.MealType(filter.MealType).Valid() {
		return nil, 0, ErrInvalidMealType
	}

	query := s.db.WithContext(ctx).Model(&models.Meal{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("created_at >= ?", dayStart(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", dayStart(*filter.To).AddDate(0, 0, 1))
	}
	if filter.MealType != "" {
		query = query.Where("meal_type = ?", filter.MealType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var meals []models.Meal
	err := query.
		Preload("Foods.Food").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&meals).Error
	if err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

// DeleteMeal removes a meal and its line items.
func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error {
	var meal models.Meal
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
}

// SearchFoods finds catalog foods by name substring, case-insensitive.
func (s *MealService) SearchFoods(ctx context.Context, query string, limit int) ([]models.Food, error) {
	if limit <= 0 {
		limit = 20
	}
	var foods []models.Food
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Limit(limit).
		Find(&foods).Error
	if err != nil {
		return nil, err
	}
	return foods, nil
}
