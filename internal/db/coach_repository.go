package db

import (
	"time"

	"github.com/terraincognita07/fitlog/internal/models"
	"gorm.io/gorm"
)

type CoachMessageRepository struct {
	database *gorm.DB
}

func NewCoachMessageRepository(database *gorm.DB) *CoachMessageRepository {
	return &CoachMessageRepository{database: database}
}

// ListByUser returns the newest limit messages in chronological order.
func (repo *CoachMessageRepository) ListByUser(userID uint, limit int) ([]models.CoachMessage, error) {
	messages := make([]models.CoachMessage, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	for left, right := 0, len(messages)-1; left < right; left, right = left+1, right-1 {
		messages[left], messages[right] = messages[right], messages[left]
	}
	return messages, nil
}

// Append stores a question and its answer together.
func (repo *CoachMessageRepository) Append(messages ...models.CoachMessage) error {
	if len(messages) == 0 {
		return nil
	}
	return repo.database.Create(&messages).Error
}

func (repo *CoachMessageRepository) DeleteByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.CoachMessage{}).Error
}

type AIUsageRepository struct {
	database *gorm.DB
}

func NewAIUsageRepository(database *gorm.DB) *AIUsageRepository {
	return &AIUsageRepository{database: database}
}

func (repo *AIUsageRepository) Record(usage *models.AIUsage) error {
	return repo.database.Create(usage).Error
}

type DailyAIUsage struct {
	Day              string `gorm:"column:day"`
	Calls            int64  `gorm:"column:calls"`
	PromptTokens     int64  `gorm:"column:prompt_tokens"`
	CompletionTokens int64  `gorm:"column:completion_tokens"`
}

// DailyTotals aggregates usage per calendar day (UTC) since the given instant.
func (repo *AIUsageRepository) DailyTotals(since time.Time) ([]DailyAIUsage, error) {
	rows := make([]DailyAIUsage, 0)
	if err := repo.database.Model(&models.AIUsage{}).
		Select("substr(created_at, 1, 10) AS day, count(*) AS calls, " +
			"coalesce(sum(prompt_tokens), 0) AS prompt_tokens, " +
			"coalesce(sum(completion_tokens), 0) AS completion_tokens").
		Where("created_at >= ?", since.UTC()).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
