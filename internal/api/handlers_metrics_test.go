package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/fitlog/internal/models"
)

func TestMetricUpsertIsKeyedByWeekStart(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "metrics@example.com")

	response := env.request(t, http.MethodPost, "/api/metrics/2024-03-06", cookie, map[string]any{
		"weight":       82.4,
		"steps":        50000,
		"workout_type": "Strength",
		"notes":        "  first week  ",
	})
	assertStatus(t, response, http.StatusOK)
	saved := models.Metric{}
	decodeJSON(t, response, &saved)
	if saved.Date != "2024-03-03" {
		t.Fatalf("expected week start 2024-03-03, got %q", saved.Date)
	}
	if saved.WorkoutType == nil || *saved.WorkoutType != models.WorkoutStrength {
		t.Fatalf("expected normalized workout type, got %v", saved.WorkoutType)
	}
	if saved.Notes != "first week" {
		t.Fatalf("expected trimmed notes, got %q", saved.Notes)
	}

	response = env.request(t, http.MethodPost, "/api/metrics/2024-03-09", cookie, map[string]any{
		"weight": 81.9,
	})
	assertStatus(t, response, http.StatusOK)
	response.Body.Close()

	fetched := struct {
		Exists bool          `json:"exists"`
		Metric models.Metric `json:"metric"`
	}{}
	decodeJSON(t, env.request(t, http.MethodGet, "/api/metrics/2024-03-04", cookie, nil), &fetched)
	if !fetched.Exists || fetched.Metric.Weight == nil || *fetched.Metric.Weight != 81.9 {
		t.Fatalf("expected overwritten weekly record, got %+v", fetched)
	}
	if fetched.Metric.Steps != nil {
		t.Fatalf("expected steps cleared by overwrite, got %v", *fetched.Metric.Steps)
	}

	list := []models.Metric{}
	decodeJSON(t, env.request(t, http.MethodGet, "/api/metrics", cookie, nil), &list)
	if len(list) != 1 {
		t.Fatalf("expected one weekly record, got %d", len(list))
	}
}

func TestMetricMissingWeekReturnsEmptyRecord(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "metrics@example.com")

	fetched := struct {
		Exists bool          `json:"exists"`
		Metric models.Metric `json:"metric"`
	}{}
	decodeJSON(t, env.request(t, http.MethodGet, "/api/metrics/2024-01-10", cookie, nil), &fetched)
	if fetched.Exists {
		t.Fatal("expected no record")
	}
	if fetched.Metric.Date != "2024-01-07" || fetched.Metric.Weight != nil {
		t.Fatalf("expected empty record keyed by week start, got %+v", fetched.Metric)
	}
}

func TestMetricValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "metrics@example.com")

	cases := []struct {
		name string
		path string
		body map[string]any
	}{
		{name: "invalid date", path: "/api/metrics/2024-13-01", body: map[string]any{"weight": 80}},
		{name: "unknown workout type", path: "/api/metrics/2024-03-06", body: map[string]any{"workout_type": "general"}},
		{name: "unknown intensity", path: "/api/metrics/2024-03-06", body: map[string]any{"workout_intensity": "extreme"}},
		{name: "negative weight", path: "/api/metrics/2024-03-06", body: map[string]any{"weight": -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			response := env.request(t, http.MethodPost, tc.path, cookie, tc.body)
			assertStatus(t, response, http.StatusBadRequest)
			if message := readAPIError(t, response); message == "" {
				t.Fatal("expected localized error message")
			}
		})
	}
}

func TestMetricDelete(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "metrics@example.com")

	response := env.request(t, http.MethodPost, "/api/metrics/2024-03-06", cookie, map[string]any{"weight": 80})
	assertStatus(t, response, http.StatusOK)
	response.Body.Close()

	response = env.request(t, http.MethodDelete, "/api/metrics/2024-03-08", cookie, nil)
	assertStatus(t, response, http.StatusOK)
	response.Body.Close()

	response = env.request(t, http.MethodDelete, "/api/metrics/2024-03-08", cookie, nil)
	assertStatus(t, response, http.StatusNotFound)
	response.Body.Close()
}

func TestMetricsRequireSession(t *testing.T) {
	env := newTestEnv(t)

	response := env.request(t, http.MethodGet, "/api/metrics", "", nil)
	assertStatus(t, response, http.StatusUnauthorized)
	if message := readAPIError(t, response); message != "יש להתחבר כדי להמשיך." {
		t.Fatalf("unexpected unauthorized message %q", message)
	}
}

func TestMetricsAreScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	_, ownerCookie := env.signIn(t, "owner@example.com")
	_, otherCookie := env.signIn(t, "other@example.com")

	response := env.request(t, http.MethodPost, "/api/metrics/2024-03-06", ownerCookie, map[string]any{"weight": 80})
	assertStatus(t, response, http.StatusOK)
	response.Body.Close()

	list := []models.Metric{}
	decodeJSON(t, env.request(t, http.MethodGet, "/api/metrics", otherCookie, nil), &list)
	if len(list) != 0 {
		t.Fatalf("expected other user to see no metrics, got %d", len(list))
	}
}
