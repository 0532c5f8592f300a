package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/types"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ProgressPercentage computes how far along a goal is, in [0, 100].
// A goal missing either its target or current value reports zero; a
// stored zero is a real value and participates in the formula.
//
// Weight-loss goals have no stored baseline, so one is implied: the
// user is assumed to have started as far above the target as they are
// now below it (initial = target + (target - current)). Other goal
// types report current/target directly.
func ProgressPercentage(goal *models.Goal) float64 {
	if goal.TargetValue == nil || goal.CurrentValue == nil {
		return 0
	}
	target := *goal.TargetValue
	current := *goal.CurrentValue

	var progress float64
	if goal.GoalType == models.GoalTypeWeightLoss {
		initial := target + (target - current)
		if initial == target {
			return 100
		}
		progress = (initial - current) / (initial - target)
	} else {
		if target == 0 {
			return 0
		}
		progress = current / target
	}

	return math.Min(100, math.Max(0, progress*100))
}

// WeightLossHistory synthesizes a weekly series approximating how a
// weight-loss goal's value evolved since creation, for clients that
// chart progress without dense measurement history. It assumes a
// constant weekly rate and caps the series at 12 points; it is an
// interpolation, not a record of actual measurements.
func WeightLossHistory(goal *models.Goal, now time.Time) []types.ProgressPoint {
	if goal.GoalType != models.GoalTypeWeightLoss || goal.TargetValue == nil || goal.CurrentValue == nil {
		return nil
	}

	target := *goal.TargetValue
	current := *goal.CurrentValue
	initial := target + (target - current)

	start := dayStart(goal.CreatedAt)
	weeksPassed := int(dayStart(now).Sub(start).Hours() / 24 / 7)
	divisor := weeksPassed
	if divisor < 1 {
		divisor = 1
	}
	ratePerWeek := (initial - current) / float64(divisor)

	points := weeksPassed + 1
	if points > 12 {
		points = 12
	}
	if points < 1 {
		points = 1
	}

	history := make([]types.ProgressPoint, 0, points)
	for week := 0; week < points; week++ {
		history = append(history, types.ProgressPoint{
			Date:  start.AddDate(0, 0, week*7).Format("2006-01-02"),
			Value: round1(initial - ratePerWeek*float64(week)),
			Week:  week + 1,
		})
	}
	return history
}

// GoalProgress assembles the detailed progress view for one goal.
func (s *GoalService) GoalProgress(ctx context.Context, userID, goalID uuid.UUID) (*types.GoalProgress, error) {
	goal, err := s.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	progress := &types.GoalProgress{
		Percentage: ProgressPercentage(goal),
		History:    WeightLossHistory(goal, now),
	}
	if progress.History == nil {
		progress.History = []types.ProgressPoint{}
	}

	if goal.TargetDate != nil {
		days := int(dayStart(*goal.TargetDate).Sub(dayStart(now)).Hours() / 24)
		progress.DaysRemaining = &days
		if days > 0 {
			onTrack := progress.Percentage >= 50
			progress.IsOnTrack = &onTrack
		}
	}

	return progress, nil
}
