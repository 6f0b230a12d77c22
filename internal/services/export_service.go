package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/terraincognita07/fitlog/internal/models"
)

var ErrExportLoadFailed = errors.New("load export data failed")

var (
	ExportMetricCSVHeaders = []string{
		"Date", "Weight", "Waist", "Body fat", "Steps", "Workout minutes",
		"Workout type", "Workout intensity", "Sleep hours", "Water intake", "Notes",
	}
	ExportDailyLogCSVHeaders = []string{
		"Date", "Physical feeling", "Last meal", "Fasting success", "Bedtime", "Steps", "Protein",
	}
	ExportRecipeCSVHeaders = []string{
		"Id", "Name", "Ingredients", "Instructions", "Created at",
	}
)

type ExportBundle struct {
	ExportedAt time.Time         `json:"exported_at"`
	Metrics    []models.Metric   `json:"metrics"`
	DailyLogs  []models.DailyLog `json:"daily_logs"`
	Recipes    []models.Recipe   `json:"recipes"`
}

// ExportCSVSection is one titled table of a CSV export.
type ExportCSVSection struct {
	Title   string
	Headers []string
	Rows    [][]string
}

type ExportMetricReader interface {
	ListByUser(userID uint) ([]models.Metric, error)
}

type ExportDailyLogReader interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
}

type ExportRecipeReader interface {
	ListByUser(userID uint) ([]models.Recipe, error)
}

type ExportService struct {
	metrics ExportMetricReader
	logs    ExportDailyLogReader
	recipes ExportRecipeReader
}

func NewExportService(metrics ExportMetricReader, logs ExportDailyLogReader, recipes ExportRecipeReader) *ExportService {
	return &ExportService{
		metrics: metrics,
		logs:    logs,
		recipes: recipes,
	}
}

func (service *ExportService) LoadBundle(userID uint, now time.Time) (ExportBundle, error) {
	metrics, err := service.metrics.ListByUser(userID)
	if err != nil {
		return ExportBundle{}, fmt.Errorf("%w: %w", ErrExportLoadFailed, err)
	}
	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return ExportBundle{}, fmt.Errorf("%w: %w", ErrExportLoadFailed, err)
	}
	recipes, err := service.recipes.ListByUser(userID)
	if err != nil {
		return ExportBundle{}, fmt.Errorf("%w: %w", ErrExportLoadFailed, err)
	}
	return ExportBundle{
		ExportedAt: now,
		Metrics:    metrics,
		DailyLogs:  logs,
		Recipes:    recipes,
	}, nil
}

func BuildExportCSVSections(bundle ExportBundle) []ExportCSVSection {
	metricRows := make([][]string, 0, len(bundle.Metrics))
	for _, metric := range bundle.Metrics {
		metricRows = append(metricRows, []string{
			metric.Date,
			csvFloat(metric.Weight),
			csvFloat(metric.Waist),
			csvFloat(metric.BodyFat),
			csvInt(metric.Steps),
			csvInt(metric.WorkoutMinutes),
			csvString(metric.WorkoutType),
			csvString(metric.WorkoutIntensity),
			csvFloat(metric.SleepHours),
			csvFloat(metric.WaterIntake),
			metric.Notes,
		})
	}

	logRows := make([][]string, 0, len(bundle.DailyLogs))
	for _, entry := range bundle.DailyLogs {
		logRows = append(logRows, []string{
			entry.Date,
			csvString(entry.PhysicalFeeling),
			csvString(entry.LastMealTime),
			csvBool(entry.FastingSuccess),
			csvString(entry.Bedtime),
			csvInt(entry.Steps),
			csvFloat(entry.ProteinIntake),
		})
	}

	recipeRows := make([][]string, 0, len(bundle.Recipes))
	for _, recipe := range bundle.Recipes {
		recipeRows = append(recipeRows, []string{
			recipe.ID,
			recipe.Name,
			recipe.Ingredients,
			recipe.Instructions,
			recipe.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return []ExportCSVSection{
		{Title: "metrics", Headers: ExportMetricCSVHeaders, Rows: metricRows},
		{Title: "daily_logs", Headers: ExportDailyLogCSVHeaders, Rows: logRows},
		{Title: "recipes", Headers: ExportRecipeCSVHeaders, Rows: recipeRows},
	}
}

func csvFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func csvInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func csvString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func csvBool(value *bool) string {
	switch {
	case value == nil:
		return ""
	case *value:
		return "Yes"
	default:
		return "No"
	}
}
