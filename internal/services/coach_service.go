package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/fitlog/internal/llm"
	"github.com/terraincognita07/fitlog/internal/models"
)

var (
	ErrCoachQuestionRequired = errors.New("coach question required")
	ErrCoachContextFailed    = errors.New("coach context load failed")
	ErrCoachHistoryFailed    = errors.New("coach history failed")
	ErrCoachChatFailed       = errors.New("coach chat failed")
	ErrCoachAnalyzeFailed    = errors.New("coach analyze today failed")
	ErrCoachWeeklyNoData     = errors.New("coach weekly summary has no data")
	ErrCoachWeeklyFailed     = errors.New("coach weekly summary failed")
)

type CoachMetricReader interface {
	ListSince(userID uint, fromDate string) ([]models.Metric, error)
	FindLatest(userID uint) (models.Metric, bool, error)
}

type CoachDailyLogReader interface {
	ListSince(userID uint, fromDate string) ([]models.DailyLog, error)
	FindByDate(userID uint, date string) (models.DailyLog, bool, error)
}

type CoachMessageStore interface {
	ListByUser(userID uint, limit int) ([]models.CoachMessage, error)
	Append(messages ...models.CoachMessage) error
	DeleteByUser(userID uint) error
}

type CoachUsageRecorder interface {
	Record(usage *models.AIUsage) error
}

type CoachReply struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

type CoachService struct {
	metrics  CoachMetricReader
	logs     CoachDailyLogReader
	messages CoachMessageStore
	usage    CoachUsageRecorder
	model    llm.Client
}

func NewCoachService(metrics CoachMetricReader, logs CoachDailyLogReader, messages CoachMessageStore, usage CoachUsageRecorder, model llm.Client) *CoachService {
	return &CoachService{
		metrics:  metrics,
		logs:     logs,
		messages: messages,
		usage:    usage,
		model:    model,
	}
}

// LoadContext assembles the data block for the last days of records.
func (service *CoachService) LoadContext(userID uint, days int, now time.Time, location *time.Location) (string, error) {
	metrics, logs, err := service.loadWindow(userID, days, now, location)
	if err != nil {
		return "", err
	}
	return BuildCoachContext(metrics, logs), nil
}

func (service *CoachService) History(userID uint) ([]models.CoachMessage, error) {
	messages, err := service.messages.ListByUser(userID, CoachHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCoachHistoryFailed, err)
	}
	return messages, nil
}

func (service *CoachService) ResetHistory(userID uint) error {
	if err := service.messages.DeleteByUser(userID); err != nil {
		return fmt.Errorf("%w: %w", ErrCoachHistoryFailed, err)
	}
	return nil
}

// Chat answers a free-form question with the last month of data attached.
func (service *CoachService) Chat(ctx context.Context, userID uint, question string, now time.Time, location *time.Location) (CoachReply, error) {
	question = truncateRunes(strings.TrimSpace(question), MaxCoachQuestion)
	if question == "" {
		return CoachReply{}, ErrCoachQuestionRequired
	}

	history, err := service.chatHistory(userID)
	if err != nil {
		return CoachReply{}, err
	}
	dataContext, err := service.LoadContext(userID, ChatContextDays, now, location)
	if err != nil {
		return CoachReply{}, err
	}

	reply, err := service.model.Chat(ctx, CoachSystemInstruction, history, BuildChatPrompt(dataContext, question))
	if err != nil {
		return CoachReply{}, fmt.Errorf("%w: %w", ErrCoachChatFailed, err)
	}
	service.recordUsage(userID, models.UsageKindChat, reply, now)

	if err := service.appendExchange(userID, question, reply.Text, now); err != nil {
		return CoachReply{}, err
	}
	return newCoachReply(reply.Text), nil
}

// AnalyzeToday reviews today's daily log. Without one, it answers with a
// fixed reply and does not call the model.
func (service *CoachService) AnalyzeToday(ctx context.Context, userID uint, now time.Time, location *time.Location) (CoachReply, error) {
	todayISO := TodayISO(now, location)
	today, found, err := service.logs.FindByDate(userID, todayISO)
	if err != nil {
		return CoachReply{}, fmt.Errorf("%w: %w", ErrCoachContextFailed, err)
	}
	if !found {
		if err := service.appendExchange(userID, AnalyzeTodayRequest, AnalyzeTodayNoDataMsg, now); err != nil {
			return CoachReply{}, err
		}
		return newCoachReply(AnalyzeTodayNoDataMsg), nil
	}

	var latest *models.Metric
	metric, hasMetric, err := service.metrics.FindLatest(userID)
	if err != nil {
		return CoachReply{}, fmt.Errorf("%w: %w", ErrCoachContextFailed, err)
	}
	if hasMetric {
		latest = &metric
	}

	history, err := service.chatHistory(userID)
	if err != nil {
		return CoachReply{}, err
	}

	reply, err := service.model.Chat(ctx, CoachSystemInstruction, history, BuildAnalyzeTodayPrompt(todayISO, today, latest))
	if err != nil {
		return CoachReply{}, fmt.Errorf("%w: %w", ErrCoachAnalyzeFailed, err)
	}
	service.recordUsage(userID, models.UsageKindAnalyzeToday, reply, now)

	if err := service.appendExchange(userID, AnalyzeTodayRequest, reply.Text, now); err != nil {
		return CoachReply{}, err
	}
	return newCoachReply(reply.Text), nil
}

// WeeklySummary is a single-shot report over the last week; it is not part
// of the chat history.
func (service *CoachService) WeeklySummary(ctx context.Context, userID uint, now time.Time, location *time.Location) (CoachReply, error) {
	metrics, logs, err := service.loadWindow(userID, WeeklySummaryDays, now, location)
	if err != nil {
		return CoachReply{}, err
	}
	if len(metrics) == 0 && len(logs) == 0 {
		return CoachReply{}, ErrCoachWeeklyNoData
	}

	reply, err := service.model.Generate(ctx, weeklySummaryInstruction, BuildWeeklySummaryPrompt(metrics, logs))
	if err != nil {
		return CoachReply{}, fmt.Errorf("%w: %w", ErrCoachWeeklyFailed, err)
	}
	service.recordUsage(userID, models.UsageKindWeeklySummary, reply, now)
	return newCoachReply(reply.Text), nil
}

func (service *CoachService) loadWindow(userID uint, days int, now time.Time, location *time.Location) ([]models.Metric, []models.DailyLog, error) {
	fromDate := DaysAgoISO(now, location, days)
	metrics, err := service.metrics.ListSince(userID, fromDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCoachContextFailed, err)
	}
	logs, err := service.logs.ListSince(userID, fromDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCoachContextFailed, err)
	}
	return metrics, logs, nil
}

func (service *CoachService) chatHistory(userID uint) ([]llm.Message, error) {
	stored, err := service.History(userID)
	if err != nil {
		return nil, err
	}
	history := make([]llm.Message, 0, len(stored))
	for _, message := range stored {
		history = append(history, llm.Message{Role: message.Role, Text: message.Text})
	}
	return history, nil
}

func (service *CoachService) appendExchange(userID uint, question string, answer string, now time.Time) error {
	err := service.messages.Append(
		models.CoachMessage{UserID: userID, Role: models.CoachRoleUser, Text: question, CreatedAt: now},
		models.CoachMessage{UserID: userID, Role: models.CoachRoleModel, Text: answer, CreatedAt: now},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCoachHistoryFailed, err)
	}
	return nil
}

// recordUsage never fails the reply that was already produced.
func (service *CoachService) recordUsage(userID uint, kind string, reply llm.Reply, now time.Time) {
	if service.usage == nil {
		return
	}
	_ = service.usage.Record(&models.AIUsage{
		UserID:           userID,
		Kind:             kind,
		Model:            reply.Model,
		PromptTokens:     reply.Usage.PromptTokens,
		CompletionTokens: reply.Usage.CompletionTokens,
		LatencyMS:        reply.Latency.Milliseconds(),
		CreatedAt:        now.UTC(),
	})
}

func newCoachReply(text string) CoachReply {
	return CoachReply{Text: text, HTML: RenderCoachHTML(text)}
}
