package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/fitlog/internal/models"
)

const (
	RecentMetricsLimit   = 30
	MaxMetricNotesLength = 2000
)

var (
	ErrMetricInvalidDate        = errors.New("metric invalid date")
	ErrMetricInvalidWorkoutType = errors.New("metric invalid workout type")
	ErrMetricInvalidIntensity   = errors.New("metric invalid workout intensity")
	ErrMetricNegativeValue      = errors.New("metric negative value")
	ErrMetricNotFound           = errors.New("metric not found")
	ErrMetricLoadFailed         = errors.New("load metrics failed")
	ErrMetricSaveFailed         = errors.New("save metric failed")
	ErrMetricDeleteFailed       = errors.New("delete metric failed")
)

// MetricInput carries one weekly record; nil means "not recorded".
type MetricInput struct {
	Weight           *float64 `json:"weight"`
	Waist            *float64 `json:"waist"`
	BodyFat          *float64 `json:"body_fat"`
	Steps            *int     `json:"steps"`
	WorkoutMinutes   *int     `json:"workout_minutes"`
	WorkoutType      *string  `json:"workout_type"`
	WorkoutIntensity *string  `json:"workout_intensity"`
	SleepHours       *float64 `json:"sleep_hours"`
	WaterIntake      *float64 `json:"water_intake"`
	Notes            string   `json:"notes"`
}

type MetricRepository interface {
	ListRecent(userID uint, limit int) ([]models.Metric, error)
	FindByDate(userID uint, date string) (models.Metric, bool, error)
	Upsert(entry *models.Metric) error
	DeleteByDate(userID uint, date string) (bool, error)
}

type MetricService struct {
	metrics MetricRepository
}

func NewMetricService(metrics MetricRepository) *MetricService {
	return &MetricService{metrics: metrics}
}

// WeekKey resolves any ISO date to the ISO date of its week start.
func WeekKey(rawDate string, location *time.Location) (string, error) {
	day, err := ParseISODate(rawDate, location)
	if err != nil {
		return "", ErrMetricInvalidDate
	}
	return FormatISODate(WeekStart(day, location)), nil
}

func NormalizeMetricInput(input MetricInput) (MetricInput, error) {
	for _, value := range []*float64{input.Weight, input.Waist, input.BodyFat, input.SleepHours, input.WaterIntake} {
		if value != nil && *value < 0 {
			return input, ErrMetricNegativeValue
		}
	}
	for _, value := range []*int{input.Steps, input.WorkoutMinutes} {
		if value != nil && *value < 0 {
			return input, ErrMetricNegativeValue
		}
	}

	input.WorkoutType = normalizeOptionalEnum(input.WorkoutType)
	if input.WorkoutType != nil && !models.IsValidWorkoutType(*input.WorkoutType) {
		return input, ErrMetricInvalidWorkoutType
	}
	input.WorkoutIntensity = normalizeOptionalEnum(input.WorkoutIntensity)
	if input.WorkoutIntensity != nil && !models.IsValidWorkoutIntensity(*input.WorkoutIntensity) {
		return input, ErrMetricInvalidIntensity
	}

	input.Notes = truncateRunes(strings.TrimSpace(input.Notes), MaxMetricNotesLength)
	return input, nil
}

func (service *MetricService) ListRecent(userID uint) ([]models.Metric, error) {
	metrics, err := service.metrics.ListRecent(userID, RecentMetricsLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetricLoadFailed, err)
	}
	return metrics, nil
}

// FetchWeek returns the record for the week containing rawDate. A missing
// record comes back empty with only its date set.
func (service *MetricService) FetchWeek(userID uint, rawDate string, location *time.Location) (models.Metric, bool, error) {
	key, err := WeekKey(rawDate, location)
	if err != nil {
		return models.Metric{}, false, err
	}
	metric, found, err := service.metrics.FindByDate(userID, key)
	if err != nil {
		return models.Metric{}, false, fmt.Errorf("%w: %w", ErrMetricLoadFailed, err)
	}
	if !found {
		return models.Metric{Date: key}, false, nil
	}
	return metric, true, nil
}

// Save replaces the record for the week containing rawDate.
func (service *MetricService) Save(userID uint, rawDate string, input MetricInput, now time.Time, location *time.Location) (models.Metric, error) {
	key, err := WeekKey(rawDate, location)
	if err != nil {
		return models.Metric{}, err
	}
	normalized, err := NormalizeMetricInput(input)
	if err != nil {
		return models.Metric{}, err
	}

	entry := models.Metric{
		UserID:           userID,
		Date:             key,
		Weight:           normalized.Weight,
		Waist:            normalized.Waist,
		BodyFat:          normalized.BodyFat,
		Steps:            normalized.Steps,
		WorkoutMinutes:   normalized.WorkoutMinutes,
		WorkoutType:      normalized.WorkoutType,
		WorkoutIntensity: normalized.WorkoutIntensity,
		SleepHours:       normalized.SleepHours,
		WaterIntake:      normalized.WaterIntake,
		Notes:            normalized.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := service.metrics.Upsert(&entry); err != nil {
		return models.Metric{}, fmt.Errorf("%w: %w", ErrMetricSaveFailed, err)
	}

	stored, found, err := service.metrics.FindByDate(userID, key)
	if err != nil || !found {
		return entry, nil
	}
	return stored, nil
}

func (service *MetricService) Delete(userID uint, rawDate string, location *time.Location) error {
	key, err := WeekKey(rawDate, location)
	if err != nil {
		return err
	}
	deleted, err := service.metrics.DeleteByDate(userID, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMetricDeleteFailed, err)
	}
	if !deleted {
		return ErrMetricNotFound
	}
	return nil
}

func normalizeOptionalEnum(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.ToLower(strings.TrimSpace(*value))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeOptionalClock(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if _, _, err := ParseClock(trimmed); err != nil {
		return nil, err
	}
	return &trimmed, nil
}
