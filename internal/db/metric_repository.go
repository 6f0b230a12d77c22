package db

import (
	"github.com/terraincognita07/fitlog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var metricUpsertColumns = []string{
	"weight",
	"waist",
	"body_fat",
	"steps",
	"workout_minutes",
	"workout_type",
	"workout_intensity",
	"sleep_hours",
	"water_intake",
	"notes",
	"updated_at",
}

type MetricRepository struct {
	database *gorm.DB
}

func NewMetricRepository(database *gorm.DB) *MetricRepository {
	return &MetricRepository{database: database}
}

func (repo *MetricRepository) ListRecent(userID uint, limit int) ([]models.Metric, error) {
	metrics := make([]models.Metric, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

// ListSince returns records dated on or after fromDate, newest first.
func (repo *MetricRepository) ListSince(userID uint, fromDate string) ([]models.Metric, error) {
	metrics := make([]models.Metric, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ?", userID, fromDate).
		Order("date DESC").
		Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (repo *MetricRepository) ListByUser(userID uint) ([]models.Metric, error) {
	metrics := make([]models.Metric, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (repo *MetricRepository) FindLatest(userID uint) (models.Metric, bool, error) {
	metric := models.Metric{}
	result := repo.database.Where("user_id = ?", userID).Order("date DESC").Limit(1).Find(&metric)
	if result.Error != nil {
		return models.Metric{}, false, result.Error
	}
	return metric, result.RowsAffected > 0, nil
}

func (repo *MetricRepository) FindByDate(userID uint, date string) (models.Metric, bool, error) {
	metric := models.Metric{}
	result := repo.database.Where("user_id = ? AND date = ?", userID, date).Limit(1).Find(&metric)
	if result.Error != nil {
		return models.Metric{}, false, result.Error
	}
	return metric, result.RowsAffected > 0, nil
}

// Upsert writes every field of entry under its (user, date) key, replacing
// any existing record.
func (repo *MetricRepository) Upsert(entry *models.Metric) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(metricUpsertColumns),
	}).Create(entry).Error
}

func (repo *MetricRepository) DeleteByDate(userID uint, date string) (bool, error) {
	result := repo.database.Where("user_id = ? AND date = ?", userID, date).Delete(&models.Metric{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
