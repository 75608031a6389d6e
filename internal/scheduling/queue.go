package scheduling

import (
	"sort"

	"hospital-visit-server/internal/models"
)

// NextPosition returns the ordinal for a new appointment in its partition:
// one past the highest existing position, or 1 for an empty partition.
func NextPosition(active []models.Appointment) int {
	max := 0
	for _, a := range active {
		if a.QueuePosition > max {
			max = a.QueuePosition
		}
	}
	return max + 1
}

// ReconcilePositions computes the gap-free 1..n renumbering of a partition's
// active appointments, ordered by (current position, creation time). The
// returned map holds only the appointments whose position actually changes,
// so applying it repeatedly is idempotent.
func ReconcilePositions(active []models.Appointment) map[string]int {
	ordered := make([]models.Appointment, len(active))
	copy(ordered, active)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].QueuePosition != ordered[j].QueuePosition {
			return ordered[i].QueuePosition < ordered[j].QueuePosition
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	changed := make(map[string]int)
	for i, a := range ordered {
		want := i + 1
		if a.QueuePosition != want {
			changed[a.ID] = want
		}
	}
	return changed
}

// sortByPosition orders appointments by queue position in place.
func sortByPosition(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].QueuePosition < appts[j].QueuePosition
	})
}

// neighborBelow returns the active appointment holding the next-lower
// position than appt, or nil when appt is already first.
func neighborBelow(active []models.Appointment, appt *models.Appointment) *models.Appointment {
	var best *models.Appointment
	for i := range active {
		c := &active[i]
		if c.ID == appt.ID || c.QueuePosition >= appt.QueuePosition {
			continue
		}
		if best == nil || c.QueuePosition > best.QueuePosition {
			best = c
		}
	}
	return best
}

// neighborAbove returns the active appointment holding the next-higher
// position than appt, or nil when appt is already last.
func neighborAbove(active []models.Appointment, appt *models.Appointment) *models.Appointment {
	var best *models.Appointment
	for i := range active {
		c := &active[i]
		if c.ID == appt.ID || c.QueuePosition <= appt.QueuePosition {
			continue
		}
		if best == nil || c.QueuePosition < best.QueuePosition {
			best = c
		}
	}
	return best
}
