package models

import "time"

const (
	CoachRoleUser  = "user"
	CoachRoleModel = "model"

	UsageKindChat          = "chat"
	UsageKindAnalyzeToday  = "analyze_today"
	UsageKindWeeklySummary = "weekly_summary"
)

type CoachMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	Role      string    `gorm:"not null" json:"role"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// AIUsage records token accounting for a single model call.
type AIUsage struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"not null;index"`
	Kind             string    `gorm:"not null"`
	Model            string    `gorm:"not null"`
	PromptTokens     int       `gorm:"not null;default:0"`
	CompletionTokens int       `gorm:"not null;default:0"`
	LatencyMS        int64     `gorm:"column:latency_ms;not null;default:0"`
	CreatedAt        time.Time `gorm:"not null;index"`
}

func (AIUsage) TableName() string {
	return "ai_usage"
}
