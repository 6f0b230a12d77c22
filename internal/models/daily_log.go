package models

import "time"

const (
	FeelingGreat = "great"
	FeelingGood  = "good"
	FeelingOkay  = "okay"
	FeelingBad   = "bad"
)

// DailyLog is keyed by (UserID, Date); Date is an ISO calendar date.
type DailyLog struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	UserID          uint      `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date" json:"-"`
	Date            string    `gorm:"not null;uniqueIndex:uidx_daily_logs_user_date" json:"date"`
	PhysicalFeeling *string   `json:"physical_feeling"`
	LastMealTime    *string   `json:"last_meal_time"`
	FastingSuccess  *bool     `json:"fasting_success"`
	Bedtime         *string   `json:"bedtime"`
	Steps           *int      `json:"steps"`
	ProteinIntake   *float64  `json:"protein_intake"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func IsValidFeeling(value string) bool {
	switch value {
	case FeelingGreat, FeelingGood, FeelingOkay, FeelingBad:
		return true
	default:
		return false
	}
}
