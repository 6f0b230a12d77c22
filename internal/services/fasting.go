package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	EatingWindowHours  = 8
	FastingWindowHours = 16

	CountdownPhaseEating  = "eating"
	CountdownPhaseFasting = "fasting"
)

var (
	ErrInvalidClockTime = errors.New("invalid clock time")

	clockTimePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

type FastingWindow struct {
	StartTime  string `json:"start_time"`
	EatingEnd  string `json:"eating_end"`
	FastingEnd string `json:"fasting_end"`
}

type FastingCountdown struct {
	Phase     string    `json:"phase"`
	Remaining string    `json:"remaining"`
	Seconds   int64     `json:"seconds"`
	Target    time.Time `json:"target"`
}

// ParseClock validates an HH:MM wall-clock value and returns its parts.
func ParseClock(raw string) (int, int, error) {
	value := strings.TrimSpace(raw)
	if !clockTimePattern.MatchString(value) {
		return 0, 0, ErrInvalidClockTime
	}
	hours, _ := strconv.Atoi(value[:2])
	minutes, _ := strconv.Atoi(value[3:])
	if hours > 23 || minutes > 59 {
		return 0, 0, ErrInvalidClockTime
	}
	return hours, minutes, nil
}

// AddHours shifts an H:MM or HH:MM clock value by hours, wrapping at
// midnight. Values without a colon yield "".
func AddHours(clock string, hours int) string {
	if !strings.Contains(clock, ":") {
		return ""
	}
	parts := strings.SplitN(clock, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ""
	}
	minute := 0
	if trimmed := strings.TrimSpace(parts[1]); trimmed != "" {
		if minute, err = strconv.Atoi(trimmed); err != nil {
			return ""
		}
	}

	total := ((hour+hours)*60 + minute) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func BuildFastingWindow(start string) FastingWindow {
	eatingEnd := AddHours(start, EatingWindowHours)
	return FastingWindow{
		StartTime:  start,
		EatingEnd:  eatingEnd,
		FastingEnd: AddHours(eatingEnd, FastingWindowHours),
	}
}

// BuildCountdown reports the time left until the nearest window boundary.
// Inside the eating window it counts down to the eating end, otherwise to
// the next eating start.
func BuildCountdown(start string, now time.Time, location *time.Location) (FastingCountdown, error) {
	hours, minutes, err := ParseClock(start)
	if err != nil {
		return FastingCountdown{}, err
	}
	if location == nil {
		location = time.UTC
	}
	localNow := now.In(location)

	year, month, day := localNow.Date()
	windowStart := time.Date(year, month, day, hours, minutes, 0, 0, location)
	if localNow.Before(windowStart) {
		windowStart = windowStart.AddDate(0, 0, -1)
	}
	eatingEnd := windowStart.Add(EatingWindowHours * time.Hour)

	if !localNow.Before(windowStart) && localNow.Before(eatingEnd) {
		return newCountdown(CountdownPhaseEating, eatingEnd, localNow), nil
	}

	nextStart := windowStart
	if !localNow.Before(eatingEnd) {
		nextStart = windowStart.AddDate(0, 0, 1)
	}
	return newCountdown(CountdownPhaseFasting, nextStart, localNow), nil
}

func newCountdown(phase string, target time.Time, now time.Time) FastingCountdown {
	remaining := target.Sub(now)
	return FastingCountdown{
		Phase:     phase,
		Remaining: FormatRemaining(remaining),
		Seconds:   int64(clampDuration(remaining) / time.Second),
		Target:    target,
	}
}

// FormatRemaining renders a duration as HH:MM:SS; negative values clamp to zero.
func FormatRemaining(remaining time.Duration) string {
	total := int64(clampDuration(remaining) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func clampDuration(value time.Duration) time.Duration {
	if value < 0 {
		return 0
	}
	return value
}
