package scheduling

// Slot is one fixed-duration candidate start time within a doctor's window.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// EnumerateSlots produces the ordered candidate start times between the
// window's start and end (end exclusive) at the fixed granularity. A slot is
// marked unavailable when its start time appears in the booked set.
func EnumerateSlots(w Window, booked map[string]bool) ([]Slot, error) {
	start, err := parseClock(w.Start)
	if err != nil {
		return nil, ErrValidation("invalid window start: %v", err)
	}
	end, err := parseClock(w.End)
	if err != nil {
		return nil, ErrValidation("invalid window end: %v", err)
	}

	slots := []Slot{}
	for t := start; t < end; t += SlotDurationMinutes {
		clock := formatClock(t)
		slots = append(slots, Slot{Time: clock, Available: !booked[clock]})
	}
	return slots, nil
}
