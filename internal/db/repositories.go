package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Metrics       *MetricRepository
	DailyLogs     *DailyLogRepository
	Recipes       *RecipeRepository
	CoachMessages *CoachMessageRepository
	AIUsage       *AIUsageRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Metrics:       NewMetricRepository(database),
		DailyLogs:     NewDailyLogRepository(database),
		Recipes:       NewRecipeRepository(database),
		CoachMessages: NewCoachMessageRepository(database),
		AIUsage:       NewAIUsageRepository(database),
	}
}
