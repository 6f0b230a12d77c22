// Package api exposes the JSON HTTP surface on top of the services layer.
package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/fitlog/internal/db"
	"github.com/terraincognita07/fitlog/internal/i18n"
	"github.com/terraincognita07/fitlog/internal/llm"
	"github.com/terraincognita07/fitlog/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	log          *logrus.Logger
	now          func() time.Time
	loginLimiter *attemptLimiter

	authService      *services.AuthService
	accountService   *services.AccountService
	setupService     *services.SetupService
	metricService    *services.MetricService
	dailyLogService  *services.DailyLogService
	recipeService    *services.RecipeService
	fastingService   *services.FastingService
	dashboardService *services.DashboardService
	coachService     *services.CoachService
	exportService    *services.ExportService
}

func NewHandler(database *gorm.DB, model llm.Client, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool, logger *logrus.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if model == nil {
		return nil, errors.New("model client is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	handler := &Handler{
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		log:          logger,
		now:          time.Now,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database, model), nil
}

func (handler *Handler) withDependencies(database *gorm.DB, model llm.Client) *Handler {
	repos := db.NewRepositories(database)
	handler.authService = services.NewAuthService(repos.Users)
	handler.accountService = services.NewAccountService(repos.Users)
	handler.setupService = services.NewSetupService(repos.Users)
	handler.metricService = services.NewMetricService(repos.Metrics)
	handler.dailyLogService = services.NewDailyLogService(repos.DailyLogs)
	handler.recipeService = services.NewRecipeService(repos.Recipes)
	handler.fastingService = services.NewFastingService(repos.Users)
	handler.dashboardService = services.NewDashboardService(repos.Metrics)
	handler.coachService = services.NewCoachService(repos.Metrics, repos.DailyLogs, repos.CoachMessages, repos.AIUsage, model)
	handler.exportService = services.NewExportService(repos.Metrics, repos.DailyLogs, repos.Recipes)
	return handler
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
