package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/session", handler.Session)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/dashboard", handler.AuthRequired, handler.Dashboard)
	api.Get("/progress", handler.AuthRequired, handler.Progress)

	metrics := api.Group("/metrics", handler.AuthRequired)
	metrics.Get("", handler.ListMetrics)
	metrics.Get("/:date", handler.GetMetric)
	metrics.Post("/:date", handler.SaveMetric)
	metrics.Delete("/:date", handler.DeleteMetric)

	dailyLogs := api.Group("/daily-logs", handler.AuthRequired)
	dailyLogs.Get("", handler.ListDailyLogs)
	dailyLogs.Get("/:date", handler.GetDailyLog)
	dailyLogs.Post("/:date", handler.SaveDailyLog)
	dailyLogs.Delete("/:date", handler.DeleteDailyLog)

	recipes := api.Group("/recipes", handler.AuthRequired)
	recipes.Get("", handler.ListRecipes)
	recipes.Post("", handler.CreateRecipe)
	recipes.Get("/:id", handler.GetRecipe)
	recipes.Put("/:id", handler.UpdateRecipe)
	recipes.Delete("/:id", handler.DeleteRecipe)

	fasting := api.Group("/fasting", handler.AuthRequired)
	fasting.Get("", handler.GetFasting)
	fasting.Put("", handler.UpdateFasting)
	fasting.Get("/countdown", handler.FastingCountdown)
	fasting.Get("/countdown/stream", handler.FastingCountdownStream)

	coach := api.Group("/coach", handler.AuthRequired)
	coach.Get("/history", handler.CoachHistory)
	coach.Delete("/history", handler.ResetCoachHistory)
	coach.Post("/chat", handler.CoachChat)
	coach.Post("/analyze-today", handler.CoachAnalyzeToday)
	coach.Post("/weekly-summary", handler.CoachWeeklySummary)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/change-password", handler.ChangePassword)
	settings.Delete("/delete-account", handler.DeleteAccount)
}
