package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/virtusia/backend/internal/models"
	"github.com/virtusia/backend/internal/types"
)

// DefaultTrendWindowDays is the trailing window used when the caller
// does not ask for a specific one.
const DefaultTrendWindowDays = 90

// MeasurementTrends analyzes the direction of each tracked body metric
// over the trailing window. A metric needs at least two recorded values
// to have a trend; with fewer it is simply absent from the report.
// DataPoints counts the values actually used, not measurements taken.
func (s *GoalService) MeasurementTrends(ctx context.Context, userID uuid.UUID, windowDays int) (*types.TrendReport, error) {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}

	since := dayStart(time.Now()).AddDate(0, 0, -windowDays)
	var measurements []models.BodyMeasurement
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ?", userID, since).
		Order("measured_at ASC").
		Find(&measurements).Error
	if err != nil {
		return nil, err
	}

	report := &types.TrendReport{
		WindowDays:        windowDays,
		TotalMeasurements: len(measurements),
		Trends:            map[string]types.MetricTrend{},
	}

	addMetric(report.Trends, "weight", measurements, func(m *models.BodyMeasurement) *float64 {
		return m.Weight
	})
	addMetric(report.Trends, "body_fat", measurements, func(m *models.BodyMeasurement) *float64 {
		return m.BodyFatPercentage
	})
	addMetric(report.Trends, "muscle_mass", measurements, func(m *models.BodyMeasurement) *float64 {
		return m.MuscleMass
	})

	return report, nil
}

// addMetric reduces the non-nil subsequence of one metric to a trend
// entry, skipping the metric entirely below two samples.
func addMetric(trends map[string]types.MetricTrend, name string, measurements []models.BodyMeasurement, value func(*models.BodyMeasurement) *float64) {
	var series []float64
	for i := range measurements {
		if v := value(&measurements[i]); v != nil {
			series = append(series, *v)
		}
	}
	if len(series) < 2 {
		return
	}

	change := series[len(series)-1] - series[0]
	trend := "stable"
	switch {
	case change < 0:
		trend = "decreasing"
	case change > 0:
		trend = "increasing"
	}

	trends[name] = types.MetricTrend{
		Current:    series[len(series)-1],
		Initial:    series[0],
		Change:     change,
		Trend:      trend,
		DataPoints: len(series),
	}
}
