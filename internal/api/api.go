package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/virtusia/backend/config"
	"github.com/virtusia/backend/internal/middleware"
	"github.com/virtusia/backend/internal/service"
	"github.com/virtusia/backend/internal/telemetry/metrics"
)

// Deps carries the shared infrastructure handed to the handlers.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	S3      *config.S3Config
	Metrics *metrics.Manager
	Logger  *logrus.Logger
}

func SetupAPI(router *gin.Engine, deps Deps, jwtSecret string) {
	v1 := router.Group("/api/v1")
	{
		// Initialize services
		authService := service.NewAuthService(deps.DB, jwtSecret)
		profileService := service.NewProfileService(deps.DB)
		mealService := service.NewMealService(deps.DB)
		nutritionService := service.NewNutritionService(deps.DB)
		goalService := service.NewGoalService(deps.DB)
		analyzer := service.NewStaticMealAnalyzer()

		var imageService *service.ImageService
		if deps.S3 != nil {
			imageService = service.NewImageService(deps.S3)
		}

		var analysisLimiter *middleware.RateLimiter
		if deps.Redis != nil {
			analysisLimiter = middleware.NewMealAnalysisRateLimiter(deps.Redis)
		}

		// Initialize handlers
		authHandler := NewAuthHandler(authService)
		profileHandler := NewProfileHandler(profileService, authService)
		mealHandler := NewMealHandler(mealService, nutritionService, analyzer, imageService, authService, analysisLimiter, deps.Metrics)
		goalHandler := NewGoalHandler(goalService, authService, deps.Metrics)
		dashboardHandler := NewDashboardHandler(mealService, nutritionService, goalService, authService)

		// Register routes
		authHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
		mealHandler.RegisterRoutes(v1)
		goalHandler.RegisterRoutes(v1)
		dashboardHandler.RegisterRoutes(v1)
	}
}

// respondServiceError translates service sentinel errors into HTTP status
// codes. Anything unrecognized is a 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidGoalType),
		errors.Is(err, service.ErrInvalidGoalStatus),
		errors.Is(err, service.ErrInvalidTargetDate),
		errors.Is(err, service.ErrInvalidMealType),
		errors.Is(err, service.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
