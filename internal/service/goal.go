package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/types"
)

// GoalService manages goal lifecycle, body measurements and the
// derived progress/trend views over them.
type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// GoalFilter narrows goal listings; empty fields are ignored.
type GoalFilter struct {
	Status   string
	GoalType string
	Limit    int
	Offset   int
}

// MeasurementFilter narrows measurement listings.
type MeasurementFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// CreateGoal validates and stores a new goal. The goal starts active;
// a missing current value is stored as zero, matching client behavior
// that treats a fresh goal as "no progress yet".
func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, req *types.CreateGoalRequest) (*models.Goal, error) {
	goalType := models.GoalType(req.GoalType)
	if !goalType.Valid() {
		return nil, ErrInvalidGoalType
	}

	var targetDate *time.Time
	if req.TargetDate != "" {
		parsed, err := time.Parse("2006-01-02", req.TargetDate)
		if err != nil {
			return nil, ErrInvalidTargetDate
		}
		if !parsed.After(dayStart(time.Now())) {
			return nil, ErrInvalidTargetDate
		}
		targetDate = &parsed
	}

	current := req.CurrentValue
	if current == nil {
		zero := 0.0
		current = &zero
	}

	goal := models.Goal{
		UserID:       userID,
		GoalType:     goalType,
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		CurrentValue: current,
		Unit:         req.Unit,
		TargetDate:   targetDate,
		Status:       models.GoalStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// GetGoal loads one goal owned by the user.
func (s *GoalService) GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns goals newest first, plus the unpaged total.
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID, filter GoalFilter) ([]models.Goal, int64, error) {
	if filter.Status != "" && !models.GoalStatus(filter.Status).Valid() {
		return nil, 0, ErrInvalidGoalStatus
	}
	if filter.GoalType != "" && !models.GoalType(filter.GoalType).Valid() {
		return nil, 0, ErrInvalidGoalType
	}

	query := s.db.WithContext(ctx).Model(&models.Goal{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.GoalType != "" {
		query = query.Where("goal_type = ?", filter.GoalType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var goals []models.Goal
	err := query.Order("created_at DESC").Offset(filter.Offset).Limit(limit).Find(&goals).Error
	if err != nil {
		return nil, 0, err
	}
	return goals, total, nil
}

// UpdateGoal applies partial field updates. Status values are validated
// but transitions are not constrained: the original product allows
// reopening a cancelled goal, and that behavior is kept. A target date
// supplied for an active goal must be strictly future; an explicit null
// clears it unconditionally.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, req *types.UpdateGoalRequest) (*models.Goal, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetValue != nil {
		goal.TargetValue = req.TargetValue
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = req.CurrentValue
	}
	if req.Unit != nil {
		goal.Unit = *req.Unit
	}
	if req.Status != nil {
		status := models.GoalStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidGoalStatus
		}
		goal.Status = status
	}

	if req.TargetDateSet {
		if req.TargetDate != nil {
			parsed, err := time.Parse("2006-01-02", *req.TargetDate)
			if err != nil {
				return nil, ErrInvalidTargetDate
			}
			if goal.Status == models.GoalStatusActive && !parsed.After(dayStart(time.Now())) {
				return nil, ErrInvalidTargetDate
			}
			goal.TargetDate = &parsed
		} else {
			goal.TargetDate = nil
		}
	}

	goal.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes a goal owned by the user.
func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(goal).Error
}

// RecordMeasurement stores a body measurement and, when it carries a
// weight, propagates it to the user's active weight-loss goals: the
// weight becomes each goal's current value, and a goal whose target is
// reached flips to completed. The insert and the goal updates commit as
// one transaction so a goal never references a measurement that was
// not durably saved.
func (s *GoalService) RecordMeasurement(ctx context.Context, userID uuid.UUID, req *types.RecordMeasurementRequest) (*models.BodyMeasurement, error) {
	measurement := models.BodyMeasurement{
		UserID:             userID,
		Weight:             req.Weight,
		BodyFatPercentage:  req.BodyFatPercentage,
		MuscleMass:         req.MuscleMass,
		WaistCircumference: req.WaistCircumference,
		ChestCircumference: req.ChestCircumference,
		ArmCircumference:   req.ArmCircumference,
		HipCircumference:   req.HipCircumference,
		Notes:              req.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&measurement).Error; err != nil {
			return err
		}
		if measurement.Weight == nil {
			return nil
		}

		var goals []models.Goal
		err := tx.Where("user_id = ? AND goal_type = ? AND status = ?",
			userID, models.GoalTypeWeightLoss, models.GoalStatusActive).
			Find(&goals).Error
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := range goals {
			goal := &goals[i]
			goal.CurrentValue = measurement.Weight
			goal.UpdatedAt = now
			if goal.TargetValue != nil && *measurement.Weight <= *goal.TargetValue {
				goal.Status = models.GoalStatusCompleted
			}
			if err := tx.Save(goal).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &measurement, nil
}

// ListMeasurements returns measurements newest first, plus the unpaged total.
func (s *GoalService) ListMeasurements(ctx context.Context, userID uuid.UUID, filter MeasurementFilter) ([]models.BodyMeasurement, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.BodyMeasurement{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("measured_at >= ?", dayStart(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("measured_at < ?", dayStart(*filter.To).AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var measurements []models.BodyMeasurement
	err := query.Order("measured_at DESC").Offset(filter.Offset).Limit(limit).Find(&measurements).Error
	if err != nil {
		return nil, 0, err
	}
	return measurements, total, nil
}
