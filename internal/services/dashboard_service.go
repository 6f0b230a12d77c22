package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/fitlog/internal/models"
)

var ErrProgressLoadFailed = errors.New("load progress failed")

type ProgressView struct {
	Stats        ProgressStats `json:"stats"`
	WeightSeries []WeightPoint `json:"weight_series"`
}

type DashboardView struct {
	Greeting string       `json:"greeting"`
	Today    string       `json:"today"`
	Fasting  FastingState `json:"fasting"`
	Progress ProgressView `json:"progress"`
}

type ProgressMetricReader interface {
	ListRecent(userID uint, limit int) ([]models.Metric, error)
}

type DashboardService struct {
	metrics ProgressMetricReader
}

func NewDashboardService(metrics ProgressMetricReader) *DashboardService {
	return &DashboardService{metrics: metrics}
}

// Progress computes statistics over the most recent weekly records.
func (service *DashboardService) Progress(userID uint, now time.Time, location *time.Location) (ProgressView, error) {
	metrics, err := service.metrics.ListRecent(userID, RecentMetricsLimit)
	if err != nil {
		return ProgressView{}, fmt.Errorf("%w: %w", ErrProgressLoadFailed, err)
	}
	return ProgressView{
		Stats:        BuildProgressStats(metrics, now, location),
		WeightSeries: BuildWeightSeries(metrics),
	}, nil
}

func (service *DashboardService) Build(user models.User, now time.Time, location *time.Location) (DashboardView, error) {
	progress, err := service.Progress(user.ID, now, location)
	if err != nil {
		return DashboardView{}, err
	}
	return DashboardView{
		Greeting: Greeting(user.DisplayName, now, location),
		Today:    TodayISO(now, location),
		Fasting:  BuildFastingState(user.FastingStartTime, now, location),
		Progress: progress,
	}, nil
}
