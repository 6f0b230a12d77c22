package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/fitlog/internal/services"
)

type errorResponse struct {
	status int
	key    string
}

// serviceErrorResponses maps service sentinels to a status and message key.
// Entries with a 5xx status are logged.
var serviceErrorResponses = []struct {
	target error
	errorResponse
}{
	{services.ErrMetricInvalidDate, errorResponse{fiber.StatusBadRequest, "error.invalid_date"}},
	{services.ErrDailyLogInvalidDate, errorResponse{fiber.StatusBadRequest, "error.invalid_date"}},
	{services.ErrInvalidISODate, errorResponse{fiber.StatusBadRequest, "error.invalid_date"}},
	{services.ErrInvalidClockTime, errorResponse{fiber.StatusBadRequest, "error.invalid_time"}},
	{services.ErrDailyLogInvalidTime, errorResponse{fiber.StatusBadRequest, "error.invalid_time"}},
	{services.ErrMetricNegativeValue, errorResponse{fiber.StatusBadRequest, "error.negative_value"}},
	{services.ErrDailyLogNegativeValue, errorResponse{fiber.StatusBadRequest, "error.negative_value"}},
	{services.ErrMetricInvalidWorkoutType, errorResponse{fiber.StatusBadRequest, "metric.invalid_workout_type"}},
	{services.ErrMetricInvalidIntensity, errorResponse{fiber.StatusBadRequest, "metric.invalid_intensity"}},
	{services.ErrDailyLogInvalidFeeling, errorResponse{fiber.StatusBadRequest, "daily_log.invalid_feeling"}},
	{services.ErrMetricNotFound, errorResponse{fiber.StatusNotFound, "error.not_found"}},
	{services.ErrDailyLogNotFound, errorResponse{fiber.StatusNotFound, "error.not_found"}},
	{services.ErrMetricLoadFailed, errorResponse{fiber.StatusInternalServerError, "error.load_failed"}},
	{services.ErrDailyLogLoadFailed, errorResponse{fiber.StatusInternalServerError, "error.load_failed"}},
	{services.ErrProgressLoadFailed, errorResponse{fiber.StatusInternalServerError, "error.load_failed"}},
	{services.ErrMetricSaveFailed, errorResponse{fiber.StatusInternalServerError, "error.save_failed"}},
	{services.ErrDailyLogSaveFailed, errorResponse{fiber.StatusInternalServerError, "error.save_failed"}},
	{services.ErrMetricDeleteFailed, errorResponse{fiber.StatusInternalServerError, "error.delete_failed"}},
	{services.ErrDailyLogDeleteFailed, errorResponse{fiber.StatusInternalServerError, "error.delete_failed"}},

	{services.ErrRecipeNameRequired, errorResponse{fiber.StatusBadRequest, "recipe.name_required"}},
	{services.ErrRecipeNotFound, errorResponse{fiber.StatusNotFound, "recipe.not_found"}},
	{services.ErrRecipeLoadFailed, errorResponse{fiber.StatusInternalServerError, "recipe.load_failed"}},
	{services.ErrRecipeSaveFailed, errorResponse{fiber.StatusInternalServerError, "recipe.save_failed"}},
	{services.ErrRecipeDeleteFailed, errorResponse{fiber.StatusInternalServerError, "recipe.delete_failed"}},

	{services.ErrFastingSaveFailed, errorResponse{fiber.StatusInternalServerError, "fasting.save_failed"}},

	{services.ErrCoachQuestionRequired, errorResponse{fiber.StatusBadRequest, "coach.question_required"}},
	{services.ErrCoachWeeklyNoData, errorResponse{fiber.StatusUnprocessableEntity, "coach.weekly_no_data"}},
	{services.ErrCoachContextFailed, errorResponse{fiber.StatusInternalServerError, "coach.init_failed"}},
	{services.ErrCoachHistoryFailed, errorResponse{fiber.StatusInternalServerError, "coach.history_failed"}},
	{services.ErrCoachChatFailed, errorResponse{fiber.StatusBadGateway, "coach.chat_failed"}},
	{services.ErrCoachAnalyzeFailed, errorResponse{fiber.StatusBadGateway, "coach.analyze_failed"}},
	{services.ErrCoachWeeklyFailed, errorResponse{fiber.StatusBadGateway, "coach.weekly_failed"}},

	{services.ErrExportLoadFailed, errorResponse{fiber.StatusInternalServerError, "export.failed"}},

	{services.ErrAuthCredentialsInvalid, errorResponse{fiber.StatusBadRequest, "auth.invalid_email"}},
	{services.ErrWeakPassword, errorResponse{fiber.StatusBadRequest, "auth.weak_password"}},
	{services.ErrAuthPasswordMismatch, errorResponse{fiber.StatusBadRequest, "auth.password_mismatch"}},
	{services.ErrAuthEmailExists, errorResponse{fiber.StatusConflict, "auth.email_exists"}},
	{services.ErrAuthInvalidLogin, errorResponse{fiber.StatusUnauthorized, "auth.invalid_credentials"}},
	{services.ErrAuthLookupFailed, errorResponse{fiber.StatusInternalServerError, "auth.register_failed"}},
	{services.ErrAuthRegisterFailed, errorResponse{fiber.StatusInternalServerError, "auth.register_failed"}},

	{services.ErrAccountPasswordChangeInvalidInput, errorResponse{fiber.StatusBadRequest, "settings.password_required"}},
	{services.ErrAccountPasswordMismatch, errorResponse{fiber.StatusBadRequest, "auth.password_mismatch"}},
	{services.ErrAccountInvalidCurrentPassword, errorResponse{fiber.StatusUnauthorized, "settings.invalid_current_password"}},
	{services.ErrAccountNewPasswordMustDiffer, errorResponse{fiber.StatusBadRequest, "settings.new_password_must_differ"}},
	{services.ErrAccountWeakPassword, errorResponse{fiber.StatusBadRequest, "auth.weak_password"}},
	{services.ErrAccountPasswordMissing, errorResponse{fiber.StatusBadRequest, "settings.password_required"}},
	{services.ErrAccountPasswordInvalid, errorResponse{fiber.StatusUnauthorized, "settings.invalid_current_password"}},
	{services.ErrAccountUpdateFailed, errorResponse{fiber.StatusInternalServerError, "settings.password_update_failed"}},
	{services.ErrAccountDeleteFailed, errorResponse{fiber.StatusInternalServerError, "settings.delete_failed"}},
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	return handler.i18n.Translate(currentLanguage(c), key)
}

func (handler *Handler) localizedError(c *fiber.Ctx, status int, key string) error {
	return apiError(c, status, handler.translate(c, key))
}

// respondServiceError renders err as a localized API error. Unknown errors
// and server-side failures are logged with the operation name.
func (handler *Handler) respondServiceError(c *fiber.Ctx, op string, err error) error {
	response := errorResponse{fiber.StatusInternalServerError, "error.internal"}
	for _, candidate := range serviceErrorResponses {
		if errors.Is(err, candidate.target) {
			response = candidate.errorResponse
			break
		}
	}

	if response.status >= fiber.StatusInternalServerError {
		fields := logrus.Fields{"op": op}
		if user, ok := currentUser(c); ok {
			fields["user_id"] = user.ID
		}
		handler.log.WithFields(fields).WithError(err).Error("request failed")
	}
	return handler.localizedError(c, response.status, response.key)
}

func parseBody(c *fiber.Ctx, target any) bool {
	if len(c.Body()) == 0 {
		return true
	}
	return c.BodyParser(target) == nil
}
