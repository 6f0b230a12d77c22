package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlog/internal/services"
)

func (handler *Handler) ListDailyLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	logs, err := handler.dailyLogService.ListRecent(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "daily_logs.list", err)
	}
	return c.JSON(logs)
}

func (handler *Handler) GetDailyLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	entry, found, err := handler.dailyLogService.FetchByDate(user.ID, c.Params("date"), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "daily_logs.get", err)
	}
	return c.JSON(fiber.Map{"exists": found, "log": entry})
}

func (handler *Handler) SaveDailyLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := services.DailyLogInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	entry, err := handler.dailyLogService.Save(user.ID, c.Params("date"), input, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "daily_logs.save", err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteDailyLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	if err := handler.dailyLogService.Delete(user.ID, c.Params("date"), handler.location); err != nil {
		return handler.respondServiceError(c, "daily_logs.delete", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
