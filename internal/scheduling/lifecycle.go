package scheduling

import "hospital-visit-server/internal/models"

// statusTransitions is the appointment status machine: the happy path runs
// scheduled → confirmed → in-progress → completed, and any non-terminal
// status may move to cancelled or no-show.
var statusTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusScheduled:  {models.StatusConfirmed, models.StatusCancelled, models.StatusNoShow},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled, models.StatusNoShow},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled, models.StatusNoShow},
}

// CanTransition reports whether the status machine permits from → to.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
