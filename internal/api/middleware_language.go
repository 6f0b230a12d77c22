package api

import "github.com/gofiber/fiber/v2"

const languageCookieMaxAge = 365 * 24 * 60 * 60

// LanguageMiddleware picks the language for localized error messages. An
// explicit cookie wins over Accept-Language and is rewritten when it names an
// unsupported language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if requested := c.Cookies(languageCookieName); requested != "" {
		language = handler.i18n.NormalizeLanguage(requested)
		if requested != language {
			handler.setLanguageCookie(c, language)
		}
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		MaxAge:   languageCookieMaxAge,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
