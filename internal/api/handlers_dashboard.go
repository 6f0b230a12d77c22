package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	view, err := handler.dashboardService.Build(*user, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "dashboard", err)
	}
	return c.JSON(view)
}

func (handler *Handler) Progress(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	view, err := handler.dashboardService.Progress(user.ID, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "progress", err)
	}
	return c.JSON(view)
}
