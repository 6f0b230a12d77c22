package services

import (
	"strings"
	"time"
)

// Greeting picks a Hebrew time-of-day salutation and addresses the user by
// the first word of their display name.
func Greeting(displayName string, now time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}

	var salutation string
	switch hour := now.In(location).Hour(); {
	case hour >= 5 && hour < 12:
		salutation = "בוקר טוב"
	case hour >= 12 && hour < 18:
		salutation = "צהריים טובים"
	case hour >= 18 && hour < 22:
		salutation = "ערב טוב"
	default:
		salutation = "לילה טוב"
	}

	firstName := ""
	if fields := strings.Fields(displayName); len(fields) > 0 {
		firstName = fields[0]
	}
	if firstName == "" {
		return salutation
	}
	return salutation + ", " + firstName
}
