package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlog/internal/services"
)

func (handler *Handler) ListMetrics(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	metrics, err := handler.metricService.ListRecent(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "metrics.list", err)
	}
	return c.JSON(metrics)
}

// GetMetric answers with the record of the week containing :date. A week
// without a record is returned empty with exists=false.
func (handler *Handler) GetMetric(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	metric, found, err := handler.metricService.FetchWeek(user.ID, c.Params("date"), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "metrics.get", err)
	}
	return c.JSON(fiber.Map{"exists": found, "metric": metric})
}

func (handler *Handler) SaveMetric(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := services.MetricInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	metric, err := handler.metricService.Save(user.ID, c.Params("date"), input, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "metrics.save", err)
	}
	return c.JSON(metric)
}

func (handler *Handler) DeleteMetric(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	if err := handler.metricService.Delete(user.ID, c.Params("date"), handler.location); err != nil {
		return handler.respondServiceError(c, "metrics.delete", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
