package service

import (
	"fmt"

	"oiltrack-service/internal/model"
)

type Status string

const (
	StatusNormal   Status = "NORMAL"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
)

// WarningThresholdKm is absolute, not proportional to an oil type's maximum
// distance: a 1000 km oil warns at 50% while a 10000 km oil warns at 5%.
// That matches the shipped behavior and stays until product says otherwise.
const WarningThresholdKm = 500

// Classify derives the reminder status from the remaining service distance.
// Pure and deterministic; safe to call on every render.
func Classify(remaining, maxDistance int64) Status {
	switch {
	case remaining <= 0:
		return StatusCritical
	case remaining <= WarningThresholdKm:
		return StatusWarning
	default:
		return StatusNormal
	}
}

// Alert is the user-facing reminder payload for one oil type.
type Alert struct {
	OilType           string `json:"oil_type"`
	Status            Status `json:"status"`
	RemainingDistance int64  `json:"remaining_distance"`
	MaxDistance       int64  `json:"max_distance"`
	Message           string `json:"message"`
}

func BuildAlert(oil *model.OilType) Alert {
	status := Classify(oil.RemainingDistance, oil.MaxDistance)

	var message string
	switch status {
	case StatusCritical:
		message = "oil change due now"
	case StatusWarning:
		message = fmt.Sprintf("only %d km left until the next oil change", oil.RemainingDistance)
	default:
		message = fmt.Sprintf("%d of %d km remaining", oil.RemainingDistance, oil.MaxDistance)
	}

	return Alert{
		OilType:           oil.Name,
		Status:            status,
		RemainingDistance: oil.RemainingDistance,
		MaxDistance:       oil.MaxDistance,
		Message:           message,
	}
}
