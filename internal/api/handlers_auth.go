package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlog/internal/models"
	"github.com/terraincognita07/fitlog/internal/services"
)

type loginInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type registerInput struct {
	services.RegistrationInput
	RememberMe bool `json:"remember_me" form:"remember_me"`
}

type sessionView struct {
	Authenticated      bool         `json:"authenticated"`
	NeedsSetup         bool         `json:"needs_setup"`
	MustChangePassword bool         `json:"must_change_password,omitempty"`
	User               *models.User `json:"user,omitempty"`
	Token              string       `json:"token,omitempty"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	user, err := handler.authService.Register(input.RegistrationInput, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, "auth.register", err)
	}

	token, err := handler.setAuthCookie(c, &user, input.RememberMe)
	if err != nil {
		return handler.respondServiceError(c, "auth.register.session", err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionView{Authenticated: true, User: &user, Token: token})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return handler.localizedError(c, fiber.StatusTooManyRequests, "auth.too_many_attempts")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		handler.loginLimiter.recordFailure(limiterKey, now, loginAttemptWindow)
		return handler.respondServiceError(c, "auth.login", err)
	}
	handler.loginLimiter.reset(limiterKey)

	token, err := handler.setAuthCookie(c, &user, input.RememberMe)
	if err != nil {
		return handler.respondServiceError(c, "auth.login.session", err)
	}
	return c.JSON(sessionView{
		Authenticated:      true,
		MustChangePassword: user.MustChangePassword,
		User:               &user,
		Token:              token,
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Session reports the current sign-in state without requiring a session.
func (handler *Handler) Session(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		needsSetup, setupErr := handler.setupService.RequiresInitialSetup()
		if setupErr != nil {
			return handler.respondServiceError(c, "auth.session", setupErr)
		}
		return c.JSON(sessionView{NeedsSetup: needsSetup})
	}
	return c.JSON(sessionView{
		Authenticated:      true,
		MustChangePassword: user.MustChangePassword,
		User:               user,
	})
}
