package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrFastingSaveFailed = errors.New("save fasting start failed")

type FastingState struct {
	Stored    bool              `json:"stored"`
	Window    FastingWindow     `json:"window"`
	Countdown *FastingCountdown `json:"countdown,omitempty"`
}

type FastingUserRepository interface {
	UpdateFastingStartTime(userID uint, start *string) error
}

type FastingService struct {
	users FastingUserRepository
}

func NewFastingService(users FastingUserRepository) *FastingService {
	return &FastingService{users: users}
}

// BuildFastingState falls back to the current clock time when no start is
// stored, in which case no countdown is produced.
func BuildFastingState(stored *string, now time.Time, location *time.Location) FastingState {
	if location == nil {
		location = time.UTC
	}
	if stored != nil {
		if _, _, err := ParseClock(*stored); err == nil {
			state := FastingState{Stored: true, Window: BuildFastingWindow(*stored)}
			if countdown, err := BuildCountdown(*stored, now, location); err == nil {
				state.Countdown = &countdown
			}
			return state
		}
	}
	return FastingState{Window: BuildFastingWindow(now.In(location).Format("15:04"))}
}

// SetStartTime validates and stores an HH:MM start. A blank value clears it.
func (service *FastingService) SetStartTime(userID uint, raw string) (*string, error) {
	value := strings.TrimSpace(raw)
	var start *string
	if value != "" {
		if _, _, err := ParseClock(value); err != nil {
			return nil, err
		}
		start = &value
	}
	if err := service.users.UpdateFastingStartTime(userID, start); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFastingSaveFailed, err)
	}
	return start, nil
}
