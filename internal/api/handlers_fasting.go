package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/fitlog/internal/services"
)

const countdownStreamInterval = time.Second

type fastingStartInput struct {
	StartTime string `json:"start_time" form:"start_time"`
}

type countdownFrame struct {
	Active    bool                       `json:"active"`
	Label     string                     `json:"label,omitempty"`
	Countdown *services.FastingCountdown `json:"countdown,omitempty"`
}

func (handler *Handler) GetFasting(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	return c.JSON(services.BuildFastingState(user.FastingStartTime, handler.currentTime(), handler.location))
}

// UpdateFasting stores the preferred HH:MM start; an empty value clears it.
func (handler *Handler) UpdateFasting(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	input := fastingStartInput{}
	if !parseBody(c, &input) {
		return handler.localizedError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	start, err := handler.fastingService.SetStartTime(user.ID, input.StartTime)
	if err != nil {
		return handler.respondServiceError(c, "fasting.update", err)
	}
	return c.JSON(services.BuildFastingState(start, handler.currentTime(), handler.location))
}

func (handler *Handler) FastingCountdown(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	return c.JSON(handler.countdownFrame(currentLanguage(c), user.FastingStartTime, handler.currentTime()))
}

// FastingCountdownStream pushes one countdown frame per second as
// server-sent events until the client disconnects or the server stops.
// Without a stored start a single inactive frame is sent.
func (handler *Handler) FastingCountdownStream(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	language := currentLanguage(c)
	start := user.FastingStartTime
	userID := user.ID
	done := c.Context().Done()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(countdownStreamInterval)
		defer ticker.Stop()

		for {
			frame := handler.countdownFrame(language, start, handler.currentTime())
			if err := writeCountdownEvent(w, frame); err != nil {
				handler.log.WithFields(logrus.Fields{"op": "fasting.stream", "user_id": userID}).
					WithError(err).Debug("countdown stream closed")
				return
			}
			if !frame.Active {
				return
			}

			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	})
	return nil
}

func (handler *Handler) countdownFrame(language string, start *string, now time.Time) countdownFrame {
	state := services.BuildFastingState(start, now, handler.location)
	if state.Countdown == nil {
		return countdownFrame{}
	}

	labelKey := "fasting.fasting_label"
	if state.Countdown.Phase == services.CountdownPhaseEating {
		labelKey = "fasting.eating_label"
	}
	return countdownFrame{
		Active:    true,
		Label:     handler.i18n.Translate(language, labelKey),
		Countdown: state.Countdown,
	}
}

func writeCountdownEvent(w *bufio.Writer, frame countdownFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: countdown\ndata: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
