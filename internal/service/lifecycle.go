package service

import (
	"fmt"

	"problem-solver/internal/models"
)

// automatic edges driven by the pipeline; admins may override to any status
var transitions = map[models.Status][]models.Status{
	models.StatusNew:       {models.StatusAnalyzed},
	models.StatusAnalyzed:  {models.StatusDelivered},
	models.StatusDelivered: {},
	models.StatusArchived:  {},
}

// CanAdvance reports whether the pipeline may move a submission from one status to another
func CanAdvance(from, to models.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanDispatch reports whether a report email may be sent in the given status.
// Delivered submissions may be re-sent.
func CanDispatch(status models.Status) bool {
	return status == models.StatusAnalyzed || status == models.StatusDelivered
}

// ParseOverride validates a status requested by an administrator
func ParseOverride(raw string) (models.Status, error) {
	status, err := models.ParseStatus(raw)
	if err != nil {
		return "", newValidationError("status", fmt.Sprintf("must be one of %v", models.AllStatuses))
	}
	return status, nil
}
