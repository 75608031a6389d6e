package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hospital-visit-server/internal/models"
)

// SlotDurationMinutes is the fixed slot granularity.
const SlotDurationMinutes = 30

// Window is a doctor's open hours on one date, both ends as "HH:MM".
type Window struct {
	Start string `json:"startTime"`
	End   string `json:"endTime"`
}

// ResolveDay maps the date to its weekday name and looks it up in the
// doctor's weekly availability. The second return value is false when no
// entry exists for that day or the entry is marked unavailable.
func ResolveDay(windows []models.DoctorAvailability, date time.Time) (Window, bool) {
	weekday := date.Weekday().String()
	for _, w := range windows {
		if !strings.EqualFold(w.DayOfWeek, weekday) {
			continue
		}
		if !w.IsAvailable {
			return Window{}, false
		}
		return Window{Start: w.StartTime, End: w.EndTime}, true
	}
	return Window{}, false
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// formatClock converts minutes since midnight back to "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidClock reports whether s is a well-formed "HH:MM" time.
func ValidClock(s string) bool {
	_, err := parseClock(s)
	return err == nil
}

// DateOnly strips the time of day, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
