package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/fitlog/internal/llm"
	"github.com/terraincognita07/fitlog/internal/models"
)

type stubCoachMetrics struct {
	since     []models.Metric
	latest    *models.Metric
	sinceFrom string
	listErr   error
}

func (stub *stubCoachMetrics) ListSince(_ uint, fromDate string) ([]models.Metric, error) {
	stub.sinceFrom = fromDate
	return stub.since, stub.listErr
}

func (stub *stubCoachMetrics) FindLatest(uint) (models.Metric, bool, error) {
	if stub.latest == nil {
		return models.Metric{}, false, nil
	}
	return *stub.latest, true, nil
}

type stubCoachLogs struct {
	since []models.DailyLog
	byDay map[string]models.DailyLog
}

func (stub *stubCoachLogs) ListSince(uint, string) ([]models.DailyLog, error) {
	return stub.since, nil
}

func (stub *stubCoachLogs) FindByDate(_ uint, date string) (models.DailyLog, bool, error) {
	entry, ok := stub.byDay[date]
	return entry, ok, nil
}

type stubCoachMessages struct {
	stored []models.CoachMessage
}

func (stub *stubCoachMessages) ListByUser(uint, int) ([]models.CoachMessage, error) {
	return append([]models.CoachMessage(nil), stub.stored...), nil
}

func (stub *stubCoachMessages) Append(messages ...models.CoachMessage) error {
	stub.stored = append(stub.stored, messages...)
	return nil
}

func (stub *stubCoachMessages) DeleteByUser(uint) error {
	stub.stored = nil
	return nil
}

type stubUsage struct {
	records []models.AIUsage
}

func (stub *stubUsage) Record(usage *models.AIUsage) error {
	stub.records = append(stub.records, *usage)
	return nil
}

type stubModel struct {
	reply         string
	err           error
	chatCalls     int
	generateCalls int
	lastSystem    string
	lastPrompt    string
	lastHistory   []llm.Message
}

func (stub *stubModel) Chat(_ context.Context, system string, history []llm.Message, prompt string) (llm.Reply, error) {
	stub.chatCalls++
	stub.lastSystem, stub.lastHistory, stub.lastPrompt = system, history, prompt
	if stub.err != nil {
		return llm.Reply{}, stub.err
	}
	return llm.Reply{Text: stub.reply, Model: "stub", Usage: llm.Usage{PromptTokens: 10, CompletionTokens: 5}}, nil
}

func (stub *stubModel) Generate(_ context.Context, system string, prompt string) (llm.Reply, error) {
	stub.generateCalls++
	stub.lastSystem, stub.lastPrompt = system, prompt
	if stub.err != nil {
		return llm.Reply{}, stub.err
	}
	return llm.Reply{Text: stub.reply, Model: "stub"}, nil
}

func (stub *stubModel) Close() error { return nil }

var coachNow = time.Date(2025, 3, 5, 20, 0, 0, 0, time.UTC)

func newStubCoach(metrics *stubCoachMetrics, logs *stubCoachLogs, model *stubModel) (*CoachService, *stubCoachMessages, *stubUsage) {
	messages := &stubCoachMessages{}
	usage := &stubUsage{}
	return NewCoachService(metrics, logs, messages, usage, model), messages, usage
}

func TestCoachChatRejectsEmptyQuestion(t *testing.T) {
	model := &stubModel{reply: "x"}
	service, _, _ := newStubCoach(&stubCoachMetrics{}, &stubCoachLogs{}, model)

	if _, err := service.Chat(context.Background(), 1, "   ", coachNow, time.UTC); !errors.Is(err, ErrCoachQuestionRequired) {
		t.Fatalf("expected ErrCoachQuestionRequired, got %v", err)
	}
	if model.chatCalls != 0 {
		t.Fatal("expected model not to be called")
	}
}

func TestCoachChatWithoutDataSendsSentinelAndStoresExchange(t *testing.T) {
	metrics := &stubCoachMetrics{}
	model := &stubModel{reply: "**כל הכבוד** על ההתחלה"}
	service, messages, usage := newStubCoach(metrics, &stubCoachLogs{}, model)

	reply, err := service.Chat(context.Background(), 1, "איך אני מתקדם?", coachNow, time.UTC)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if metrics.sinceFrom != "2025-02-03" {
		t.Fatalf("expected a 30 day window starting 2025-02-03, got %s", metrics.sinceFrom)
	}
	if model.lastSystem != CoachSystemInstruction {
		t.Fatal("expected the coach system instruction on every chat turn")
	}
	if !strings.Contains(model.lastPrompt, CoachNoDataSentinel) {
		t.Fatalf("expected sentinel in prompt, got %q", model.lastPrompt)
	}
	if reply.HTML != "<strong>כל הכבוד</strong> על ההתחלה" {
		t.Fatalf("unexpected html %q", reply.HTML)
	}
	if len(messages.stored) != 2 || messages.stored[0].Role != models.CoachRoleUser || messages.stored[1].Text != reply.Text {
		t.Fatalf("expected question and answer stored, got %+v", messages.stored)
	}
	if len(usage.records) != 1 || usage.records[0].Kind != models.UsageKindChat || usage.records[0].PromptTokens != 10 {
		t.Fatalf("expected one chat usage record, got %+v", usage.records)
	}
}

func TestCoachChatSeedsStoredHistory(t *testing.T) {
	model := &stubModel{reply: "answer two"}
	service, messages, _ := newStubCoach(&stubCoachMetrics{}, &stubCoachLogs{}, model)
	messages.stored = []models.CoachMessage{
		{Role: models.CoachRoleUser, Text: "q1"},
		{Role: models.CoachRoleModel, Text: "a1"},
	}

	if _, err := service.Chat(context.Background(), 1, "q2", coachNow, time.UTC); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(model.lastHistory) != 2 || model.lastHistory[1].Role != llm.RoleModel || model.lastHistory[1].Text != "a1" {
		t.Fatalf("expected prior turns as history, got %+v", model.lastHistory)
	}
}

func TestCoachChatModelFailure(t *testing.T) {
	model := &stubModel{err: errors.New("quota exceeded")}
	service, messages, _ := newStubCoach(&stubCoachMetrics{}, &stubCoachLogs{}, model)

	if _, err := service.Chat(context.Background(), 1, "hello", coachNow, time.UTC); !errors.Is(err, ErrCoachChatFailed) {
		t.Fatalf("expected ErrCoachChatFailed, got %v", err)
	}
	if len(messages.stored) != 0 {
		t.Fatal("expected nothing stored after a failed call")
	}
}

func TestCoachAnalyzeTodayWithoutLogSkipsModel(t *testing.T) {
	model := &stubModel{reply: "unused"}
	service, messages, _ := newStubCoach(&stubCoachMetrics{}, &stubCoachLogs{}, model)

	reply, err := service.AnalyzeToday(context.Background(), 1, coachNow, time.UTC)
	if err != nil {
		t.Fatalf("analyze today: %v", err)
	}
	if reply.Text != AnalyzeTodayNoDataMsg {
		t.Fatalf("expected fixed no-data reply, got %q", reply.Text)
	}
	if model.chatCalls != 0 {
		t.Fatal("expected model not to be called")
	}
	if len(messages.stored) != 2 || messages.stored[0].Text != AnalyzeTodayRequest {
		t.Fatalf("expected request and reply stored, got %+v", messages.stored)
	}
}

func TestCoachAnalyzeTodayIncludesLatestMetric(t *testing.T) {
	logs := &stubCoachLogs{byDay: map[string]models.DailyLog{
		"2025-03-05": {Date: "2025-03-05", ProteinIntake: floatPtr(62)},
	}}
	metrics := &stubCoachMetrics{latest: &models.Metric{Date: "2025-03-02", Weight: floatPtr(79.2)}}
	model := &stubModel{reply: "ניתוח"}
	service, _, usage := newStubCoach(metrics, logs, model)

	if _, err := service.AnalyzeToday(context.Background(), 1, coachNow, time.UTC); err != nil {
		t.Fatalf("analyze today: %v", err)
	}
	if !strings.Contains(model.lastPrompt, `"protein_intake": 62`) || !strings.Contains(model.lastPrompt, `"weight": 79.2`) {
		t.Fatalf("expected today's log and latest metric in prompt, got %q", model.lastPrompt)
	}
	if len(usage.records) != 1 || usage.records[0].Kind != models.UsageKindAnalyzeToday {
		t.Fatalf("expected analyze usage record, got %+v", usage.records)
	}
}

func TestCoachWeeklySummary(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		model := &stubModel{reply: "x"}
		service, _, _ := newStubCoach(&stubCoachMetrics{}, &stubCoachLogs{}, model)

		if _, err := service.WeeklySummary(context.Background(), 1, coachNow, time.UTC); !errors.Is(err, ErrCoachWeeklyNoData) {
			t.Fatalf("expected ErrCoachWeeklyNoData, got %v", err)
		}
		if model.generateCalls != 0 {
			t.Fatal("expected model not to be called")
		}
	})

	t.Run("single shot outside chat history", func(t *testing.T) {
		metrics := &stubCoachMetrics{since: []models.Metric{{Date: "2025-03-02", Steps: intPtr(52000)}}}
		model := &stubModel{reply: "## סיכום\nשבוע טוב"}
		service, messages, _ := newStubCoach(metrics, &stubCoachLogs{}, model)

		reply, err := service.WeeklySummary(context.Background(), 1, coachNow, time.UTC)
		if err != nil {
			t.Fatalf("weekly summary: %v", err)
		}
		if metrics.sinceFrom != "2025-02-26" {
			t.Fatalf("expected 7 day window from 2025-02-26, got %s", metrics.sinceFrom)
		}
		if model.generateCalls != 1 || model.chatCalls != 0 {
			t.Fatalf("expected one generate call, got generate=%d chat=%d", model.generateCalls, model.chatCalls)
		}
		if !strings.HasPrefix(reply.HTML, "<h3>סיכום</h3>") {
			t.Fatalf("unexpected html %q", reply.HTML)
		}
		if len(messages.stored) != 0 {
			t.Fatal("expected weekly summary to stay out of chat history")
		}
	})

	t.Run("model failure", func(t *testing.T) {
		logs := &stubCoachLogs{since: []models.DailyLog{{Date: "2025-03-04"}}}
		service, _, _ := newStubCoach(&stubCoachMetrics{}, logs, &stubModel{err: errors.New("boom")})

		if _, err := service.WeeklySummary(context.Background(), 1, coachNow, time.UTC); !errors.Is(err, ErrCoachWeeklyFailed) {
			t.Fatalf("expected ErrCoachWeeklyFailed, got %v", err)
		}
	})
}

func TestCoachContextLoadFailure(t *testing.T) {
	metrics := &stubCoachMetrics{listErr: errors.New("db locked")}
	service, _, _ := newStubCoach(metrics, &stubCoachLogs{}, &stubModel{reply: "x"})

	if _, err := service.Chat(context.Background(), 1, "hi", coachNow, time.UTC); !errors.Is(err, ErrCoachContextFailed) {
		t.Fatalf("expected ErrCoachContextFailed, got %v", err)
	}
}
