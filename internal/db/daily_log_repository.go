package db

import (
	"github.com/terraincognita07/fitlog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var dailyLogUpsertColumns = []string{
	"physical_feeling",
	"last_meal_time",
	"fasting_success",
	"bedtime",
	"steps",
	"protein_intake",
	"updated_at",
}

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListByUser(userID uint) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) ListRecent(userID uint, limit int) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) ListSince(userID uint, fromDate string) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ?", userID, fromDate).
		Order("date DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByDate(userID uint, date string) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.Where("user_id = ? AND date = ?", userID, date).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}

func (repo *DailyLogRepository) Upsert(entry *models.DailyLog) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(dailyLogUpsertColumns),
	}).Create(entry).Error
}

func (repo *DailyLogRepository) DeleteByDate(userID uint, date string) (bool, error) {
	result := repo.database.Where("user_id = ? AND date = ?", userID, date).Delete(&models.DailyLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
