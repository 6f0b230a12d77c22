package models

import "time"

const (
	WorkoutStrength    = "strength"
	WorkoutCardio      = "cardio"
	WorkoutHIIT        = "hiit"
	WorkoutFlexibility = "flexibility"
	WorkoutSports      = "sports"
	WorkoutGeneral     = "general"

	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// Metric is a weekly measurement keyed by (UserID, Date) where Date is the
// ISO week-start (Sunday).
type Metric struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	UserID           uint      `gorm:"not null;uniqueIndex:uidx_metrics_user_date" json:"-"`
	Date             string    `gorm:"not null;uniqueIndex:uidx_metrics_user_date" json:"date"`
	Weight           *float64  `json:"weight"`
	Waist            *float64  `json:"waist"`
	BodyFat          *float64  `json:"body_fat"`
	Steps            *int      `json:"steps"`
	WorkoutMinutes   *int      `json:"workout_minutes"`
	WorkoutType      *string   `json:"workout_type"`
	WorkoutIntensity *string   `json:"workout_intensity"`
	SleepHours       *float64  `json:"sleep_hours"`
	WaterIntake      *float64  `json:"water_intake"`
	Notes            string    `gorm:"not null;default:''" json:"notes"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func IsValidWorkoutType(value string) bool {
	switch value {
	case WorkoutStrength, WorkoutCardio, WorkoutHIIT, WorkoutFlexibility, WorkoutSports:
		return true
	default:
		return false
	}
}

func IsValidWorkoutIntensity(value string) bool {
	switch value {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	default:
		return false
	}
}
