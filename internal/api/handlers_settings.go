package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlog/internal/services"
)

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := services.PasswordChangeInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	if err := handler.accountService.ChangePassword(user.ID, user.PasswordHash, input); err != nil {
		return handler.respondServiceError(c, "settings.change_password", err)
	}

	user.MustChangePassword = false
	if _, err := handler.setAuthCookie(c, user, false); err != nil {
		return handler.respondServiceError(c, "settings.change_password.session", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// DeleteAccount removes the user and every record they own after
// re-checking the password.
func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := deleteAccountInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	if err := handler.accountService.DeleteAccount(user.ID, user.PasswordHash, input.Password); err != nil {
		return handler.respondServiceError(c, "settings.delete_account", err)
	}

	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
