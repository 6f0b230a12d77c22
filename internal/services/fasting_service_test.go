package services

import (
	"errors"
	"testing"
	"time"
)

type stubFastingUsers struct {
	stored *string
	calls  int
}

func (stub *stubFastingUsers) UpdateFastingStartTime(_ uint, start *string) error {
	stub.calls++
	stub.stored = start
	return nil
}

func TestBuildFastingStateWithoutStoredStartUsesClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 5, 9, 41, 12, 0, time.UTC)
	state := BuildFastingState(nil, now, time.UTC)
	if state.Stored || state.Countdown != nil {
		t.Fatalf("expected unstored state without countdown, got %+v", state)
	}
	if state.Window.StartTime != "09:41" || state.Window.EatingEnd != "17:41" {
		t.Fatalf("unexpected window %+v", state.Window)
	}
}

func TestBuildFastingStateWithStoredStartHasCountdown(t *testing.T) {
	t.Parallel()

	start := "12:00"
	now := time.Date(2025, 3, 5, 13, 0, 0, 0, time.UTC)
	state := BuildFastingState(&start, now, time.UTC)
	if !state.Stored || state.Countdown == nil {
		t.Fatalf("expected stored state with countdown, got %+v", state)
	}
	if state.Countdown.Phase != CountdownPhaseEating || state.Countdown.Remaining != "07:00:00" {
		t.Fatalf("unexpected countdown %+v", state.Countdown)
	}
}

func TestSetStartTimeValidatesAndClears(t *testing.T) {
	t.Parallel()

	users := &stubFastingUsers{}
	service := NewFastingService(users)

	if _, err := service.SetStartTime(1, "25:00"); !errors.Is(err, ErrInvalidClockTime) {
		t.Fatalf("expected ErrInvalidClockTime, got %v", err)
	}
	if users.calls != 0 {
		t.Fatal("expected invalid input not to reach the repository")
	}

	stored, err := service.SetStartTime(1, " 11:30 ")
	if err != nil || stored == nil || *stored != "11:30" {
		t.Fatalf("expected stored 11:30, got %v err=%v", stored, err)
	}

	cleared, err := service.SetStartTime(1, "")
	if err != nil || cleared != nil || users.stored != nil {
		t.Fatalf("expected cleared start, got %v err=%v", cleared, err)
	}
}
