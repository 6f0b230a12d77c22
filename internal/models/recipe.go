package models

import "time"

type Recipe struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	Ingredients  string    `gorm:"not null;default:''" json:"ingredients"`
	Instructions string    `gorm:"not null;default:''" json:"instructions"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}
