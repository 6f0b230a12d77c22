package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/fitlog/internal/models"
)

type ProgressStats struct {
	WeightChange       float64        `json:"weight_change"`
	WorkoutCount       int            `json:"workout_count"`
	AvgWorkoutMinutes  int            `json:"avg_workout_minutes"`
	AvgWeeklySteps     int            `json:"avg_weekly_steps"`
	WorkoutBreakdown   map[string]int `json:"workout_breakdown"`
	ConsecutiveWeeks   int            `json:"consecutive_weeks"`
	WeightedEntryCount int            `json:"weighted_entry_count"`
}

type WeightPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// BuildProgressStats summarizes weekly metrics in any order. Empty input
// yields zero values.
func BuildProgressStats(metrics []models.Metric, now time.Time, location *time.Location) ProgressStats {
	stats := ProgressStats{WorkoutBreakdown: map[string]int{}}
	if len(metrics) == 0 {
		return stats
	}
	sorted := sortMetricsAscending(metrics)

	weights := make([]float64, 0, len(sorted))
	workoutMinutesTotal := 0
	stepsTotal, stepsCount := 0, 0
	for _, metric := range sorted {
		if metric.Weight != nil {
			weights = append(weights, *metric.Weight)
		}
		if metric.WorkoutMinutes != nil && *metric.WorkoutMinutes > 0 {
			stats.WorkoutCount++
			workoutMinutesTotal += *metric.WorkoutMinutes
			stats.WorkoutBreakdown[workoutTypeBucket(metric.WorkoutType)]++
		}
		if metric.Steps != nil && *metric.Steps > 0 {
			stepsTotal += *metric.Steps
			stepsCount++
		}
	}

	stats.WeightedEntryCount = len(weights)
	if len(weights) >= 2 {
		stats.WeightChange = roundTo(weights[len(weights)-1]-weights[0], 1)
	}
	if stats.WorkoutCount > 0 {
		stats.AvgWorkoutMinutes = roundHalfUp(float64(workoutMinutesTotal) / float64(stats.WorkoutCount))
	}
	if stepsCount > 0 {
		stats.AvgWeeklySteps = roundHalfUp(float64(stepsTotal) / float64(stepsCount))
	}
	stats.ConsecutiveWeeks = consecutiveWeekStreak(sorted, now, location)
	return stats
}

// BuildWeightSeries returns the weighted records in ascending date order.
func BuildWeightSeries(metrics []models.Metric) []WeightPoint {
	sorted := sortMetricsAscending(metrics)
	points := make([]WeightPoint, 0, len(sorted))
	for _, metric := range sorted {
		if metric.Weight == nil {
			continue
		}
		points = append(points, WeightPoint{Date: metric.Date, Weight: *metric.Weight})
	}
	return points
}

// consecutiveWeekStreak expects metrics sorted ascending by date.
func consecutiveWeekStreak(sorted []models.Metric, now time.Time, location *time.Location) int {
	if len(sorted) == 0 {
		return 0
	}

	currentWeek := WeekStart(now, location)
	previousWeek := currentWeek.AddDate(0, 0, -7)
	latest, err := ParseISODate(sorted[len(sorted)-1].Date, location)
	if err != nil {
		return 0
	}
	if !latest.Equal(currentWeek) && !latest.Equal(previousWeek) {
		return 0
	}

	streak := 1
	for index := len(sorted) - 1; index > 0; index-- {
		newer, errNewer := ParseISODate(sorted[index].Date, location)
		older, errOlder := ParseISODate(sorted[index-1].Date, location)
		if errNewer != nil || errOlder != nil {
			break
		}
		if calendarDaysBetween(older, newer) != 7 {
			break
		}
		streak++
	}
	return streak
}

func sortMetricsAscending(metrics []models.Metric) []models.Metric {
	sorted := make([]models.Metric, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

func workoutTypeBucket(workoutType *string) string {
	if workoutType == nil || strings.TrimSpace(*workoutType) == "" {
		return models.WorkoutGeneral
	}
	return *workoutType
}

func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
