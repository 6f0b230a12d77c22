package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/terraincognita07/fitlog/internal/services"
)

func TestDashboardCombinesGreetingFastingAndProgress(t *testing.T) {
	env := newTestEnv(t)
	env.fixClock(time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC))
	_, cookie := env.signIn(t, "dash@example.com")

	for _, entry := range []struct {
		date   string
		weight float64
	}{
		{"2024-02-28", 84},
		{"2024-03-06", 83.2},
		{"2024-03-12", 82.1},
	} {
		response := env.request(t, http.MethodPost, "/api/metrics/"+entry.date, cookie, map[string]any{
			"weight":          entry.weight,
			"workout_minutes": 90,
			"workout_type":    "cardio",
		})
		assertStatus(t, response, http.StatusOK)
		response.Body.Close()
	}

	response := env.request(t, http.MethodPut, "/api/fasting", cookie, map[string]string{"start_time": "10:00"})
	assertStatus(t, response, http.StatusOK)
	response.Body.Close()

	view := services.DashboardView{}
	decodeJSON(t, env.request(t, http.MethodGet, "/api/dashboard", cookie, nil), &view)
	if view.Greeting != "בוקר טוב, Dana" {
		t.Fatalf("unexpected greeting %q", view.Greeting)
	}
	if view.Today != "2024-03-13" {
		t.Fatalf("unexpected today %q", view.Today)
	}
	if view.Fasting.Countdown == nil || view.Fasting.Countdown.Phase != services.CountdownPhaseFasting {
		t.Fatalf("expected fasting countdown, got %+v", view.Fasting.Countdown)
	}
	if view.Progress.Stats.WeightChange != -1.9 {
		t.Fatalf("expected weight change -1.9, got %v", view.Progress.Stats.WeightChange)
	}
	if view.Progress.Stats.ConsecutiveWeeks != 3 {
		t.Fatalf("expected three consecutive weeks, got %d", view.Progress.Stats.ConsecutiveWeeks)
	}
	if len(view.Progress.WeightSeries) != 3 {
		t.Fatalf("expected three weight points, got %d", len(view.Progress.WeightSeries))
	}
}

func TestProgressWithoutData(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "dash@example.com")

	view := services.ProgressView{}
	decodeJSON(t, env.request(t, http.MethodGet, "/api/progress", cookie, nil), &view)
	if view.Stats.WeightChange != 0 || view.Stats.WorkoutCount != 0 || view.Stats.ConsecutiveWeeks != 0 {
		t.Fatalf("expected zeroed stats, got %+v", view.Stats)
	}
}
