package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/fitlog/internal/models"
)

type stubExportMetrics struct {
	metrics []models.Metric
	err     error
}

func (stub stubExportMetrics) ListByUser(uint) ([]models.Metric, error) {
	return stub.metrics, stub.err
}

type stubExportLogs struct{ logs []models.DailyLog }

func (stub stubExportLogs) ListByUser(uint) ([]models.DailyLog, error) { return stub.logs, nil }

type stubExportRecipes struct{ recipes []models.Recipe }

func (stub stubExportRecipes) ListByUser(uint) ([]models.Recipe, error) { return stub.recipes, nil }

func TestExportLoadBundleWrapsFailures(t *testing.T) {
	service := NewExportService(stubExportMetrics{err: errors.New("locked")}, stubExportLogs{}, stubExportRecipes{})

	if _, err := service.LoadBundle(1, time.Now()); !errors.Is(err, ErrExportLoadFailed) {
		t.Fatalf("expected ErrExportLoadFailed, got %v", err)
	}
}

func TestBuildExportCSVSectionsRendersNullsAsEmpty(t *testing.T) {
	success := false
	bundle := ExportBundle{
		Metrics:   []models.Metric{{Date: "2025-03-02", Weight: floatPtr(80.25), WorkoutType: stringPtr(models.WorkoutSports), Notes: "good week"}},
		DailyLogs: []models.DailyLog{{Date: "2025-03-04", FastingSuccess: &success, Bedtime: stringPtr("23:15")}},
		Recipes:   []models.Recipe{{ID: "r-1", Name: "Omelette", CreatedAt: time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC)}},
	}

	sections := BuildExportCSVSections(bundle)
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	metricRow := sections[0].Rows[0]
	if len(metricRow) != len(ExportMetricCSVHeaders) {
		t.Fatalf("expected metric row width %d, got %d", len(ExportMetricCSVHeaders), len(metricRow))
	}
	if metricRow[1] != "80.25" || metricRow[2] != "" || metricRow[6] != "sports" || metricRow[10] != "good week" {
		t.Fatalf("unexpected metric row %q", metricRow)
	}

	logRow := sections[1].Rows[0]
	if logRow[1] != "" || logRow[3] != "No" || logRow[4] != "23:15" {
		t.Fatalf("unexpected daily log row %q", logRow)
	}

	recipeRow := sections[2].Rows[0]
	if recipeRow[4] != "2025-03-01T07:30:00Z" {
		t.Fatalf("unexpected recipe timestamp %q", recipeRow[4])
	}
}
