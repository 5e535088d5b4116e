package service

import (
	"math"
	"strings"
)

const kgPerLb = 0.45359237

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, invalid("weight", "must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return math.Round(value*kgPerLb*100) / 100, nil
	default:
		return 0, invalid("unit", "%q is not a weight unit (use kg or lb)", unit)
	}
}

// WeightFromKg converts a stored kilogram value for display.
func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return math.Round(weightKg/kgPerLb*10) / 10, nil
	default:
		return 0, invalid("unit", "%q is not a weight unit (use kg or lb)", unit)
	}
}
