package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/types"
)

func TestCreateGoal_Defaults(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "goals@example.com")
	svc := NewGoalService(db)

	goal, err := svc.CreateGoal(context.Background(), user.ID, &types.CreateGoalRequest{
		GoalType:    "weight_loss",
		Title:       "Drop a few kilos",
		TargetValue: floatPtr(70),
		Unit:        "kg",
	})
	require.NoError(t, err)

	assert.Equal(t, models.GoalStatusActive, goal.Status)
	require.NotNil(t, goal.CurrentValue)
	assert.Equal(t, 0.0, *goal.CurrentValue, "missing current value is stored as zero")
	assert.Nil(t, goal.TargetDate)
}

func TestCreateGoal_InvalidType(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "badtype@example.com")
	svc := NewGoalService(db)

	_, err := svc.CreateGoal(context.Background(), user.ID, &types.CreateGoalRequest{
		GoalType: "get_swole",
		Title:    "nope",
	})
	assert.ErrorIs(t, err, ErrInvalidGoalType)
}

func TestCreateGoal_TargetDateMustBeFuture(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "dates@example.com")
	svc := NewGoalService(db)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := svc.CreateGoal(context.Background(), user.ID, &types.CreateGoalRequest{
		GoalType:   "weight_loss",
		Title:      "too late",
		TargetDate: yesterday,
	})
	assert.ErrorIs(t, err, ErrInvalidTargetDate)

	today := time.Now().UTC().Format("2006-01-02")
	_, err = svc.CreateGoal(context.Background(), user.ID, &types.CreateGoalRequest{
		GoalType:   "weight_loss",
		Title:      "still too late",
		TargetDate: today,
	})
	assert.ErrorIs(t, err, ErrInvalidTargetDate, "today is not strictly future")

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	goal, err := svc.CreateGoal(context.Background(), user.ID, &types.CreateGoalRequest{
		GoalType:   "weight_loss",
		Title:      "just in time",
		TargetDate: tomorrow,
	})
	require.NoError(t, err)
	require.NotNil(t, goal.TargetDate)
	assert.Equal(t, tomorrow, goal.TargetDate.Format("2006-01-02"))

	_, err = svc.CreateGoal(context.Background(), user.ID, &types.CreateGoalRequest{
		GoalType:   "weight_loss",
		Title:      "garbled",
		TargetDate: "not-a-date",
	})
	assert.ErrorIs(t, err, ErrInvalidTargetDate)
}

func TestUpdateGoal_PartialFields(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "update@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType:     "muscle_gain",
		Title:        "Original",
		TargetValue:  floatPtr(40),
		CurrentValue: floatPtr(35),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateGoal(ctx, user.ID, goal.ID, &types.UpdateGoalRequest{
		Title: strPtr("Renamed"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.TargetValue)
	assert.Equal(t, 40.0, *updated.TargetValue, "untouched fields survive")
	require.NotNil(t, updated.CurrentValue)
	assert.Equal(t, 35.0, *updated.CurrentValue)
}

func TestUpdateGoal_StatusValidation(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "status@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType: "maintenance",
		Title:    "Keep steady",
	})
	require.NoError(t, err)

	_, err = svc.UpdateGoal(ctx, user.ID, goal.ID, &types.UpdateGoalRequest{
		Status: strPtr("finished"),
	})
	assert.ErrorIs(t, err, ErrInvalidGoalStatus)

	updated, err := svc.UpdateGoal(ctx, user.ID, goal.ID, &types.UpdateGoalRequest{
		Status: strPtr("cancelled"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusCancelled, updated.Status)

	// Reopening a cancelled goal is allowed.
	updated, err = svc.UpdateGoal(ctx, user.ID, goal.ID, &types.UpdateGoalRequest{
		Status: strPtr("active"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusActive, updated.Status)
}

func TestUpdateGoal_ClearTargetDate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "cleardate@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	goal, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType:   "weight_loss",
		Title:      "Dated",
		TargetDate: tomorrow,
	})
	require.NoError(t, err)
	require.NotNil(t, goal.TargetDate)

	// Absent target_date leaves the stored one alone.
	updated, err := svc.UpdateGoal(ctx, user.ID, goal.ID, &types.UpdateGoalRequest{
		Title: strPtr("Still dated"),
	})
	require.NoError(t, err)
	assert.NotNil(t, updated.TargetDate)

	// Explicit null clears it.
	updated, err = svc.UpdateGoal(ctx, user.ID, goal.ID, &types.UpdateGoalRequest{
		TargetDate:    nil,
		TargetDateSet: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.TargetDate)
}

func TestUpdateGoal_PastDateRejectedWhileActive(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "pastdate@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType: "weight_loss",
		Title:    "Active goal",
	})
	require.NoError(t, err)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	_, err = svc.UpdateGoal(ctx, user.ID, goal.ID, &types.UpdateGoalRequest{
		TargetDate:    &yesterday,
		TargetDateSet: true,
	})
	assert.ErrorIs(t, err, ErrInvalidTargetDate)

	// A completed goal may record a past date.
	updated, err := svc.UpdateGoal(ctx, user.ID, goal.ID, &types.UpdateGoalRequest{
		Status:        strPtr("completed"),
		TargetDate:    &yesterday,
		TargetDateSet: true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.TargetDate)
	assert.Equal(t, yesterday, updated.TargetDate.Format("2006-01-02"))
}

func TestGoalOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := newTestUser(t, db, "owner2@example.com")
	intruder := newTestUser(t, db, "intruder@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, owner.ID, &types.CreateGoalRequest{
		GoalType: "weight_loss",
		Title:    "Private",
	})
	require.NoError(t, err)

	_, err = svc.GetGoal(ctx, intruder.ID, goal.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteGoal(ctx, intruder.ID, goal.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetGoal(ctx, owner.ID, goal.ID)
	assert.NoError(t, err)
}

func TestDeleteGoal(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "delete@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType: "weight_loss",
		Title:    "Short lived",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGoal(ctx, user.ID, goal.ID))

	_, err = svc.GetGoal(ctx, user.ID, goal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGoals_Filters(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "list@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	_, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{GoalType: "weight_loss", Title: "A"})
	require.NoError(t, err)
	goalB, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{GoalType: "muscle_gain", Title: "B"})
	require.NoError(t, err)

	_, err = svc.UpdateGoal(ctx, user.ID, goalB.ID, &types.UpdateGoalRequest{Status: strPtr("paused")})
	require.NoError(t, err)

	goals, total, err := svc.ListGoals(ctx, user.ID, GoalFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, goals, 2)

	goals, total, err = svc.ListGoals(ctx, user.ID, GoalFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "A", goals[0].Title)

	goals, total, err = svc.ListGoals(ctx, user.ID, GoalFilter{GoalType: "muscle_gain"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "B", goals[0].Title)

	_, _, err = svc.ListGoals(ctx, user.ID, GoalFilter{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidGoalStatus)
}

func TestRecordMeasurement_SyncsWeightLossGoals(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "sync@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	active, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType:     "weight_loss",
		Title:        "Reach 70",
		TargetValue:  floatPtr(70),
		CurrentValue: floatPtr(80),
	})
	require.NoError(t, err)

	farTarget, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType:     "weight_loss",
		Title:        "Reach 60",
		TargetValue:  floatPtr(60),
		CurrentValue: floatPtr(80),
	})
	require.NoError(t, err)

	muscle, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType:     "muscle_gain",
		Title:        "Untouched",
		TargetValue:  floatPtr(40),
		CurrentValue: floatPtr(35),
	})
	require.NoError(t, err)

	measurement, err := svc.RecordMeasurement(ctx, user.ID, &types.RecordMeasurementRequest{
		Weight: floatPtr(70),
	})
	require.NoError(t, err)
	assert.NotEqual(t, measurement.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, measurement.MeasuredAt.IsZero())

	// Target reached, goal completes.
	reloaded, err := svc.GetGoal(ctx, user.ID, active.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusCompleted, reloaded.Status)
	assert.Equal(t, 70.0, *reloaded.CurrentValue)

	// Target not reached, stays active with updated current value.
	reloaded, err = svc.GetGoal(ctx, user.ID, farTarget.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GoalStatusActive, reloaded.Status)
	assert.Equal(t, 70.0, *reloaded.CurrentValue)

	// Non-weight-loss goals are untouched.
	reloaded, err = svc.GetGoal(ctx, user.ID, muscle.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, *reloaded.CurrentValue)
}

func TestRecordMeasurement_NoWeightNoSync(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "nosync@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType:     "weight_loss",
		Title:        "Unaffected",
		TargetValue:  floatPtr(70),
		CurrentValue: floatPtr(80),
	})
	require.NoError(t, err)

	_, err = svc.RecordMeasurement(ctx, user.ID, &types.RecordMeasurementRequest{
		BodyFatPercentage: floatPtr(22),
	})
	require.NoError(t, err)

	reloaded, err := svc.GetGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, *reloaded.CurrentValue)
	assert.Equal(t, models.GoalStatusActive, reloaded.Status)
}

func TestRecordMeasurement_OtherUsersGoalsUntouched(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "mine@example.com")
	other := newTestUser(t, db, "theirs@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	otherGoal, err := svc.CreateGoal(ctx, other.ID, &types.CreateGoalRequest{
		GoalType:     "weight_loss",
		Title:        "Not mine",
		TargetValue:  floatPtr(70),
		CurrentValue: floatPtr(80),
	})
	require.NoError(t, err)

	_, err = svc.RecordMeasurement(ctx, user.ID, &types.RecordMeasurementRequest{
		Weight: floatPtr(65),
	})
	require.NoError(t, err)

	reloaded, err := svc.GetGoal(ctx, other.ID, otherGoal.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, *reloaded.CurrentValue)
	assert.Equal(t, models.GoalStatusActive, reloaded.Status)
}

func TestListMeasurements_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "listm@example.com")
	svc := NewGoalService(db)

	now := time.Now().UTC()
	insertMeasurement(t, db, models.BodyMeasurement{
		UserID: user.ID, Weight: floatPtr(82), MeasuredAt: now.AddDate(0, 0, -2),
	})
	insertMeasurement(t, db, models.BodyMeasurement{
		UserID: user.ID, Weight: floatPtr(81), MeasuredAt: now.AddDate(0, 0, -1),
	})

	measurements, total, err := svc.ListMeasurements(context.Background(), user.ID, MeasurementFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, measurements, 2)
	assert.Equal(t, 81.0, *measurements[0].Weight)
	assert.Equal(t, 82.0, *measurements[1].Weight)
}

func TestGoalProgress_View(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "progress@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	targetDate := time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02")
	goal, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType:     "weight_loss",
		Title:        "Tracked",
		TargetValue:  floatPtr(70),
		CurrentValue: floatPtr(80),
		TargetDate:   targetDate,
	})
	require.NoError(t, err)

	progress, err := svc.GoalProgress(ctx, user.ID, goal.ID)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, progress.Percentage, 0.0)
	assert.LessOrEqual(t, progress.Percentage, 100.0)
	require.NotNil(t, progress.DaysRemaining)
	assert.Equal(t, 30, *progress.DaysRemaining)
	require.NotNil(t, progress.IsOnTrack)
	assert.NotNil(t, progress.History)
	assert.NotEmpty(t, progress.History)
}

func TestGoalProgress_NoTargetDate(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "nodate@example.com")
	svc := NewGoalService(db)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, user.ID, &types.CreateGoalRequest{
		GoalType:     "muscle_gain",
		Title:        "Open ended",
		TargetValue:  floatPtr(40),
		CurrentValue: floatPtr(30),
	})
	require.NoError(t, err)

	progress, err := svc.GoalProgress(ctx, user.ID, goal.ID)
	require.NoError(t, err)

	assert.Equal(t, 75.0, progress.Percentage)
	assert.Nil(t, progress.DaysRemaining)
	assert.Nil(t, progress.IsOnTrack)
	assert.Empty(t, progress.History, "history is weight-loss only")
	assert.NotNil(t, progress.History, "empty but present")
}
