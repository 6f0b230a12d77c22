package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlog/internal/services"
)

type coachQuestionInput struct {
	Question string `json:"question" form:"question"`
}

type coachMessageView struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
}

func (handler *Handler) CoachHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	messages, err := handler.coachService.History(user.ID)
	if err != nil {
		return handler.respondServiceError(c, "coach.history", err)
	}

	views := make([]coachMessageView, 0, len(messages))
	for _, message := range messages {
		views = append(views, coachMessageView{
			Role:      message.Role,
			Text:      message.Text,
			HTML:      services.RenderCoachHTML(message.Text),
			CreatedAt: message.CreatedAt,
		})
	}
	return c.JSON(views)
}

func (handler *Handler) ResetCoachHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	if err := handler.coachService.ResetHistory(user.ID); err != nil {
		return handler.respondServiceError(c, "coach.reset", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) CoachChat(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := coachQuestionInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	reply, err := handler.coachService.Chat(c.UserContext(), user.ID, input.Question, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "coach.chat", err)
	}
	return c.JSON(reply)
}

func (handler *Handler) CoachAnalyzeToday(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	reply, err := handler.coachService.AnalyzeToday(c.UserContext(), user.ID, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "coach.analyze_today", err)
	}
	return c.JSON(reply)
}

func (handler *Handler) CoachWeeklySummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	reply, err := handler.coachService.WeeklySummary(c.UserContext(), user.ID, handler.currentTime(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "coach.weekly_summary", err)
	}
	return c.JSON(reply)
}
