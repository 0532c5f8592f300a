package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/virtusia/backend/internal/api"
	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/telemetry/metrics"
	"github.com/virtusia/backend/internal/testdb"
)

func skipWithoutDocker(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run container-backed tests")
	}
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api.SetupAPI(router, api.Deps{
		DB:      db,
		Metrics: metrics.NewTestManager(),
		Logger:  logrus.New(),
	}, "integration-secret")
	return router
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIntegrationMeasurementGoalSync(t *testing.T) {
	skipWithoutDocker(t)

	td := testdb.SetupTestDB(t)
	router := setupRouter(td.DB)

	w := doJSON(router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      "integration@example.com",
		"password":   "super-secret",
		"first_name": "Int",
		"last_name":  "Test",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	require.NotEmpty(t, reg.Token)

	w = doJSON(router, http.MethodPost, "/api/v1/goals", reg.Token, gin.H{
		"goal_type":     "weight_loss",
		"title":         "Reach 70kg",
		"target_value":  70,
		"current_value": 80,
		"unit":          "kg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Goal struct {
			ID string `json:"id"`
		} `json:"goal"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	goalID, err := uuid.Parse(created.Goal.ID)
	require.NoError(t, err)

	w = doJSON(router, http.MethodPost, "/api/v1/goals/measurements", reg.Token, gin.H{
		"weight": 70,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The measurement insert and the goal sync commit together.
	var goal models.Goal
	require.NoError(t, td.DB.First(&goal, "id = ?", goalID).Error)
	assert.Equal(t, models.GoalStatusCompleted, goal.Status)
	require.NotNil(t, goal.CurrentValue)
	assert.Equal(t, 70.0, *goal.CurrentValue)

	var count int64
	require.NoError(t, td.DB.Model(&models.BodyMeasurement{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
