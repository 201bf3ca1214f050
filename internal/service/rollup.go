package service

import (
	"time"

	"offboard-checklist/internal/models"
)

// DeriveStatus computes a ticket's status from its checklist. completedAt is
// set to now only when every item is Done; an empty checklist is Not Started.
func DeriveStatus(statuses []models.Status, now time.Time) (models.Status, *time.Time) {
	if len(statuses) == 0 {
		return models.StatusNotStarted, nil
	}
	allDone, anyStarted := true, false
	for _, s := range statuses {
		switch s {
		case models.StatusDone:
			anyStarted = true
		case models.StatusInProgress:
			anyStarted = true
			allDone = false
		default:
			allDone = false
		}
	}
	switch {
	case allDone:
		return models.StatusDone, &now
	case anyStarted:
		return models.StatusInProgress, nil
	default:
		return models.StatusNotStarted, nil
	}
}
