package calendar

import (
	"math"
	"time"
)

const (
	minutesPerDay = 24 * 60

	// SlotMinutes is the snapping granularity of the scheduler grid.
	SlotMinutes = 15

	// MinSlotDuration is the narrowest range a committed booking may have.
	MinSlotDuration = SlotMinutes * time.Minute
)

// TimeToPercent converts a wall-clock time to its vertical position within
// a 24-hour day column, as a percentage in [0, 100).
func TimeToPercent(t time.Time) float64 {
	return float64(t.Hour()*60+t.Minute()) / minutesPerDay * 100
}

// PercentToTime converts a vertical position back to a wall-clock time on
// the reference date, snapped to the nearest slot boundary.
func PercentToTime(percent float64, referenceDate time.Time) time.Time {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	totalMinutes := percent / 100 * minutesPerDay
	snapped := int(math.Round(totalMinutes/SlotMinutes)) * SlotMinutes
	if snapped >= minutesPerDay {
		snapped = minutesPerDay - SlotMinutes
	}

	return time.Date(
		referenceDate.Year(), referenceDate.Month(), referenceDate.Day(),
		snapped/60, snapped%60, 0, 0, referenceDate.Location(),
	)
}

// PointerYToTime translates a pointer offset within a day column of the
// given pixel height into a snapped wall-clock time on the reference date.
// Offsets outside the column clamp to its edges, so the result is always a
// valid time on that day.
func PointerYToTime(pointerY, containerHeight float64, referenceDate time.Time) time.Time {
	if containerHeight <= 0 {
		return PercentToTime(0, referenceDate)
	}
	fraction := pointerY / containerHeight
	return PercentToTime(fraction*100, referenceDate)
}

// DayOf truncates a timestamp to midnight on its calendar day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
