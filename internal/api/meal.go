package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/virtusia/backend/internal/middleware"
	"github.com/virtusia/backend/internal/service"
	"github.com/virtusia/backend/internal/telemetry/metrics"
	"github.com/virtusia/backend/internal/types"
)

const maxMealImageBytes = 10 << 20 // 10 MB

type MealHandler struct {
	mealService      service.IMealService
	nutritionService service.INutritionService
	analyzer         service.MealAnalyzer
	imageService     *service.ImageService
	authService      service.IAuthService
	analysisLimiter  *middleware.RateLimiter
	metrics          *metrics.Manager
}

func NewMealHandler(
	mealService service.IMealService,
	nutritionService service.INutritionService,
	analyzer service.MealAnalyzer,
	imageService *service.ImageService,
	authService service.IAuthService,
	analysisLimiter *middleware.RateLimiter,
	m *metrics.Manager,
) *MealHandler {
	return &MealHandler{
		mealService:      mealService,
		nutritionService: nutritionService,
		analyzer:         analyzer,
		imageService:     imageService,
		authService:      authService,
		analysisLimiter:  analysisLimiter,
		metrics:          m,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals", middleware.AuthMiddleware(h.authService))
	{
		meals.POST("", h.SaveMeal)
		meals.GET("", h.ListMeals)
		meals.GET("/:id", h.GetMeal)
		meals.DELETE("/:id", h.DeleteMeal)

		if h.analysisLimiter != nil {
			meals.POST("/analyze", h.analysisLimiter.RateLimitMiddleware(), h.AnalyzeMeal)
		} else {
			meals.POST("/analyze", h.AnalyzeMeal)
		}
	}

	nutrition := router.Group("/nutrition", middleware.AuthMiddleware(h.authService))
	{
		nutrition.GET("/daily", h.DailySummary)
		nutrition.GET("/summary", h.PeriodSummary)
	}

	router.GET("/foods/search", middleware.AuthMiddleware(h.authService), h.SearchFoods)
}

func (h *MealHandler) SaveMeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.SaveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.mealService.SaveMeal(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.CounterMealsLogged.Inc()
	}

	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	filter := service.MealFilter{
		MealType: c.Query("meal_type"),
	}

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

	meals, total, err := h.mealService.ListMeals(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meals": meals,
		"total": total,
	})
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), userID, mealID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"meal": meal}
	if h.imageService != nil && meal.ImageURL != "" {
		if signed, err := h.imageService.PresignedMealPhotoURL(c.Request.Context(), meal.ImageURL, 15*time.Minute); err == nil {
			resp["photo_url"] = signed
		}
		// A failed presign still returns the meal with its stored URL.
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.mealService.DeleteMeal(c.Request.Context(), userID, mealID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

// AnalyzeMeal accepts a multipart image upload, stores the photo when
// storage is configured, and returns the structured nutrition breakdown.
func (h *MealHandler) AnalyzeMeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxMealImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	if len(imageData) > maxMealImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 10MB limit"})
		return
	}

	analysis, err := h.analyzer.AnalyzeMealImage(c.Request.Context(), imageData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "meal analysis failed"})
		return
	}

	var imageURL string
	if h.imageService != nil {
		url, err := h.imageService.UploadMealPhoto(c.Request.Context(), userID, imageData, header.Header.Get("Content-Type"))
		if err == nil {
			imageURL = url
		}
		// Upload failures are non-fatal, the analysis still goes back.
	}

	if h.metrics != nil {
		h.metrics.CounterMealAnalyses.Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":  analysis,
		"image_url": imageURL,
	})
}

func (h *MealHandler) DailySummary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	date := time.Now().UTC()
	if d, ok := parseDateQuery(c, "date"); ok {
		date = d
	} else if c.IsAborted() {
		return
	}

	summary, err := h.nutritionService.DailySummary(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *MealHandler) PeriodSummary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -6)
	end := now

	if d, ok := parseDateQuery(c, "start_date"); ok {
		start = d
	} else if c.IsAborted() {
		return
	}
	if d, ok := parseDateQuery(c, "end_date"); ok {
		end = d
	} else if c.IsAborted() {
		return
	}

	summary, err := h.nutritionService.PeriodSummary(c.Request.Context(), userID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *MealHandler) SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	foods, err := h.mealService.SearchFoods(c.Request.Context(), query, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. A missing
// parameter returns ok=false without aborting; a malformed one writes a
// 400 and aborts the request.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ", expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}
