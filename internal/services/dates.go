package services

import (
	"errors"
	"strings"
	"time"
)

const ISODateLayout = "2006-01-02"

var ErrInvalidISODate = errors.New("invalid iso date")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// WeekStart returns the Sunday on or before value, at midnight in location.
func WeekStart(value time.Time, location *time.Location) time.Time {
	day := DateAtLocation(value, location)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func ParseISODate(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(ISODateLayout, strings.TrimSpace(raw), location)
	if err != nil {
		return time.Time{}, ErrInvalidISODate
	}
	return parsed, nil
}

func FormatISODate(value time.Time) string {
	return value.Format(ISODateLayout)
}

// TodayISO is the calendar date of now in location.
func TodayISO(now time.Time, location *time.Location) string {
	return FormatISODate(DateAtLocation(now, location))
}

// DaysAgoISO is the calendar date days before now in location.
func DaysAgoISO(now time.Time, location *time.Location, days int) string {
	return FormatISODate(DateAtLocation(now, location).AddDate(0, 0, -days))
}

// calendarDaysBetween counts whole calendar days from a to b, ignoring DST shifts.
func calendarDaysBetween(a time.Time, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
