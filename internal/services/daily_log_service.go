package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/fitlog/internal/models"
)

const RecentDailyLogsLimit = 7

var (
	ErrDailyLogInvalidDate    = errors.New("daily log invalid date")
	ErrDailyLogInvalidFeeling = errors.New("daily log invalid feeling")
	ErrDailyLogInvalidTime    = errors.New("daily log invalid time")
	ErrDailyLogNegativeValue  = errors.New("daily log negative value")
	ErrDailyLogNotFound       = errors.New("daily log not found")
	ErrDailyLogLoadFailed     = errors.New("load daily logs failed")
	ErrDailyLogSaveFailed     = errors.New("save daily log failed")
	ErrDailyLogDeleteFailed   = errors.New("delete daily log failed")
)

type DailyLogInput struct {
	PhysicalFeeling *string  `json:"physical_feeling"`
	LastMealTime    *string  `json:"last_meal_time"`
	FastingSuccess  *bool    `json:"fasting_success"`
	Bedtime         *string  `json:"bedtime"`
	Steps           *int     `json:"steps"`
	ProteinIntake   *float64 `json:"protein_intake"`
}

type DailyLogRepository interface {
	ListRecent(userID uint, limit int) ([]models.DailyLog, error)
	FindByDate(userID uint, date string) (models.DailyLog, bool, error)
	Upsert(entry *models.DailyLog) error
	DeleteByDate(userID uint, date string) (bool, error)
}

type DailyLogService struct {
	logs DailyLogRepository
}

func NewDailyLogService(logs DailyLogRepository) *DailyLogService {
	return &DailyLogService{logs: logs}
}

func NormalizeDailyLogInput(input DailyLogInput) (DailyLogInput, error) {
	input.PhysicalFeeling = normalizeOptionalEnum(input.PhysicalFeeling)
	if input.PhysicalFeeling != nil && !models.IsValidFeeling(*input.PhysicalFeeling) {
		return input, ErrDailyLogInvalidFeeling
	}

	var err error
	if input.LastMealTime, err = normalizeOptionalClock(input.LastMealTime); err != nil {
		return input, ErrDailyLogInvalidTime
	}
	if input.Bedtime, err = normalizeOptionalClock(input.Bedtime); err != nil {
		return input, ErrDailyLogInvalidTime
	}

	if input.Steps != nil && *input.Steps < 0 {
		return input, ErrDailyLogNegativeValue
	}
	if input.ProteinIntake != nil && *input.ProteinIntake < 0 {
		return input, ErrDailyLogNegativeValue
	}
	return input, nil
}

func (service *DailyLogService) ListRecent(userID uint) ([]models.DailyLog, error) {
	logs, err := service.logs.ListRecent(userID, RecentDailyLogsLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDailyLogLoadFailed, err)
	}
	return logs, nil
}

// FetchByDate never reports a missing day as an error; the caller gets an
// empty record carrying only the date.
func (service *DailyLogService) FetchByDate(userID uint, rawDate string, location *time.Location) (models.DailyLog, bool, error) {
	key, err := dailyLogKey(rawDate, location)
	if err != nil {
		return models.DailyLog{}, false, err
	}
	entry, found, err := service.logs.FindByDate(userID, key)
	if err != nil {
		return models.DailyLog{}, false, fmt.Errorf("%w: %w", ErrDailyLogLoadFailed, err)
	}
	if !found {
		return models.DailyLog{Date: key}, false, nil
	}
	return entry, true, nil
}

func (service *DailyLogService) Save(userID uint, rawDate string, input DailyLogInput, now time.Time, location *time.Location) (models.DailyLog, error) {
	key, err := dailyLogKey(rawDate, location)
	if err != nil {
		return models.DailyLog{}, err
	}
	normalized, err := NormalizeDailyLogInput(input)
	if err != nil {
		return models.DailyLog{}, err
	}

	entry := models.DailyLog{
		UserID:          userID,
		Date:            key,
		PhysicalFeeling: normalized.PhysicalFeeling,
		LastMealTime:    normalized.LastMealTime,
		FastingSuccess:  normalized.FastingSuccess,
		Bedtime:         normalized.Bedtime,
		Steps:           normalized.Steps,
		ProteinIntake:   normalized.ProteinIntake,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := service.logs.Upsert(&entry); err != nil {
		return models.DailyLog{}, fmt.Errorf("%w: %w", ErrDailyLogSaveFailed, err)
	}

	stored, found, err := service.logs.FindByDate(userID, key)
	if err != nil || !found {
		return entry, nil
	}
	return stored, nil
}

func (service *DailyLogService) Delete(userID uint, rawDate string, location *time.Location) error {
	key, err := dailyLogKey(rawDate, location)
	if err != nil {
		return err
	}
	deleted, err := service.logs.DeleteByDate(userID, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDailyLogDeleteFailed, err)
	}
	if !deleted {
		return ErrDailyLogNotFound
	}
	return nil
}

func dailyLogKey(rawDate string, location *time.Location) (string, error) {
	day, err := ParseISODate(rawDate, location)
	if err != nil {
		return "", ErrDailyLogInvalidDate
	}
	return FormatISODate(day), nil
}
