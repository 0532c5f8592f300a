package api

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/virtusia/backend/internal/middleware"
	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/service"
	"github.com/virtusia/backend/internal/types"
)

type DashboardHandler struct {
	mealService      service.IMealService
	nutritionService service.INutritionService
	goalService      service.IGoalService
	authService      service.IAuthService
}

func NewDashboardHandler(
	mealService service.IMealService,
	nutritionService service.INutritionService,
	goalService service.IGoalService,
	authService service.IAuthService,
) *DashboardHandler {
	return &DashboardHandler{
		mealService:      mealService,
		nutritionService: nutritionService,
		goalService:      goalService,
		authService:      authService,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", middleware.AuthMiddleware(h.authService), h.GetDashboard)
	router.GET("/stats", middleware.AuthMiddleware(h.authService), h.GetStats)
}

// GetDashboard aggregates the landing-page view: today's nutrition, the
// top active goals, the latest meals and a seven day rollup.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()

	today, err := h.nutritionService.DailySummary(ctx, userID, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	goals, _, err := h.goalService.ListGoals(ctx, userID, service.GoalFilter{
		Status: string(models.GoalStatusActive),
		Limit:  100,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	goalsOnTrack := 0
	activeGoals := make([]types.GoalWithProgress, 0, 3)
	for i := range goals {
		gp := withProgress(&goals[i])
		if gp.ProgressPercentage >= 50 {
			goalsOnTrack++
		}
		if len(activeGoals) < 3 {
			activeGoals = append(activeGoals, *gp)
		}
	}

	recentMeals, _, err := h.mealService.ListMeals(ctx, userID, service.MealFilter{Limit: 5})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	week, err := h.nutritionService.PeriodSummary(ctx, userID, now.AddDate(0, 0, -6), now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today":          today,
		"active_goals":   activeGoals,
		"goals_on_track": goalsOnTrack,
		"recent_meals":   recentMeals,
		"week":           week,
		"message":        motivationalMessage(today),
	})
}

// GetStats returns the nutrition rollup for a named period, week by
// default, alongside goal counts.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()

	var start time.Time
	period := c.DefaultQuery("period", "week")
	switch period {
	case "week":
		start = now.AddDate(0, 0, -6)
	case "month":
		start = now.AddDate(0, 0, -29)
	case "year":
		start = now.AddDate(0, 0, -364)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be week, month or year"})
		return
	}

	summary, err := h.nutritionService.PeriodSummary(ctx, userID, start, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_, activeTotal, err := h.goalService.ListGoals(ctx, userID, service.GoalFilter{
		Status: string(models.GoalStatusActive),
		Limit:  1,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	_, completedTotal, err := h.goalService.ListGoals(ctx, userID, service.GoalFilter{
		Status: string(models.GoalStatusCompleted),
		Limit:  1,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	days := periodDays(period)
	c.JSON(http.StatusOK, gin.H{
		"period":          period,
		"summary":         summary,
		"active_goals":    activeTotal,
		"completed_goals": completedTotal,
		"overall_score":   overallScore(summary, activeTotal, completedTotal, days),
	})
}

func periodDays(period string) int {
	switch period {
	case "month":
		return 30
	case "year":
		return 365
	default:
		return 7
	}
}

// overallScore blends nutrition quality (40%), logging activity (40%)
// and goal completion (20%) into a 0..100 score.
func overallScore(summary *types.PeriodSummary, active, completed int64, days int) float64 {
	nutrition := summary.AverageHealthScore

	// Three logged meals a day counts as fully active.
	activity := float64(summary.MealsCount) / (3 * float64(days)) * 100
	if activity > 100 {
		activity = 100
	}

	var goals float64
	if total := active + completed; total > 0 {
		goals = float64(completed) / float64(total) * 100
	}

	return math.Round((nutrition*0.4+activity*0.4+goals*0.2)*10) / 10
}

func motivationalMessage(today *types.DailySummary) string {
	switch {
	case today.MealsCount == 0:
		return "Log your first meal of the day to keep your streak going!"
	case today.CalorieProgress >= 100:
		return "You've reached your calorie goal for today. Great pacing!"
	case today.CalorieProgress >= 50:
		return "Over halfway to your daily goal. Keep it up!"
	default:
		return "Good start! Remember to log every meal for accurate tracking."
	}
}
