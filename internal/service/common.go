package service

import (
	"strings"
	"time"

	"github.com/saadjs/fittrack/internal/aggregate"
	"github.com/saadjs/fittrack/internal/docstore"
)

// Store roots.
const (
	rootFood            = "foodEntries"
	rootExercise        = "exerciseEntries"
	rootWater           = "waterIntake"
	rootUsers           = "users"
	rootGoals           = "goals"
	rootMeasurements    = "measurements"
	rootCustomFoods     = "customFoods"
	rootCustomExercises = "customExercises"
)

func validateUser(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return invalid("user", "is required")
	}
	if strings.ContainsAny(userID, "/.#$[]") {
		return invalid("user", "contains a reserved character")
	}
	return nil
}

func validateDate(date string) error {
	if _, err := time.ParseInLocation(aggregate.DateLayout, date, time.Local); err != nil {
		return invalid("date", "must be YYYY-MM-DD")
	}
	return nil
}

func validateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return invalid("id", "is required")
	}
	if strings.ContainsAny(id, "/.#$[]") {
		return invalid("id", "contains a reserved character")
	}
	return nil
}

func validateUserDate(userID, date string) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	return validateDate(date)
}

func userPath(root, userID string, rest ...string) string {
	return docstore.Join(append([]string{root, userID}, rest...)...)
}
