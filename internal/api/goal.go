package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/virtusia/backend/internal/middleware"
	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/service"
	"github.com/virtusia/backend/internal/telemetry/metrics"
	"github.com/virtusia/backend/internal/types"
)

type GoalHandler struct {
	goalService service.IGoalService
	authService service.IAuthService
	metrics     *metrics.Manager
}

func NewGoalHandler(goalService service.IGoalService, authService service.IAuthService, m *metrics.Manager) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		authService: authService,
		metrics:     m,
	}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals", middleware.AuthMiddleware(h.authService))
	{
		goals.POST("", h.CreateGoal)
		goals.GET("", h.ListGoals)

		goals.POST("/measurements", h.RecordMeasurement)
		goals.GET("/measurements", h.ListMeasurements)
		goals.GET("/measurements/trends", h.MeasurementTrends)

		goals.GET("/:id", h.GetGoal)
		goals.PUT("/:id", h.UpdateGoal)
		goals.DELETE("/:id", h.DeleteGoal)
		goals.GET("/:id/progress", h.GoalProgress)
	}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": withProgress(goal)})
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter := service.GoalFilter{
		GoalType: c.Query("goal_type"),
		Status:   c.Query("status"),
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	goals, total, err := h.goalService.ListGoals(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]types.GoalWithProgress, 0, len(goals))
	for i := range goals {
		out = append(out, *withProgress(&goals[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"goals": out,
		"total": total,
	})
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": withProgress(goal)})
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	var req types.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if h.metrics != nil && goal.Status == models.GoalStatusCompleted {
		h.metrics.CounterGoalsCompleted.Inc()
	}

	c.JSON(http.StatusOK, gin.H{"goal": withProgress(goal)})
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "goal deleted"})
}

func (h *GoalHandler) GoalProgress(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}

	progress, err := h.goalService.GoalProgress(c.Request.Context(), userID, goalID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *GoalHandler) RecordMeasurement(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.RecordMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	measurement, err := h.goalService.RecordMeasurement(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.CounterMeasurements.Inc()
	}

	c.JSON(http.StatusCreated, gin.H{"measurement": measurement})
}

func (h *GoalHandler) ListMeasurements(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter := service.MeasurementFilter{}
	if from, ok := parseDateQuery(c, "from"); ok {
		filter.From = &from
	} else if c.IsAborted() {
		return
	}
	if to, ok := parseDateQuery(c, "to"); ok {
		filter.To = &to
	} else if c.IsAborted() {
		return
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	measurements, total, err := h.goalService.ListMeasurements(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"measurements": measurements,
		"total":        total,
	})
}

func (h *GoalHandler) MeasurementTrends(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	windowDays, _ := strconv.Atoi(c.DefaultQuery("days", "0"))

	report, err := h.goalService.MeasurementTrends(c.Request.Context(), userID, windowDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func withProgress(goal *models.Goal) *types.GoalWithProgress {
	return &types.GoalWithProgress{
		ID:                 goal.ID,
		UserID:             goal.UserID,
		GoalType:           string(goal.GoalType),
		Title:              goal.Title,
		Description:        goal.Description,
		TargetValue:        goal.TargetValue,
		CurrentValue:       goal.CurrentValue,
		Unit:               goal.Unit,
		TargetDate:         goal.TargetDate,
		Status:             string(goal.Status),
		ProgressPercentage: service.ProgressPercentage(goal),
		CreatedAt:          goal.CreatedAt,
		UpdatedAt:          goal.UpdatedAt,
	}
}
