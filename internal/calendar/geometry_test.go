package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var day = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestTimeToPercent(t *testing.T) {
	assert.Equal(t, 0.0, TimeToPercent(at(0, 0)))
	assert.Equal(t, 50.0, TimeToPercent(at(12, 0)))
	assert.Equal(t, 37.5, TimeToPercent(at(9, 0)))
	assert.InDelta(t, 98.958, TimeToPercent(at(23, 45)), 0.001)
}

func TestPercentRoundTrip(t *testing.T) {
	// Every slot-aligned time in the day must survive the round trip.
	for minutes := 0; minutes < 24*60; minutes += SlotMinutes {
		original := at(minutes/60, minutes%60)
		got := PercentToTime(TimeToPercent(original), day)
		assert.True(t, got.Equal(original), "round trip for %s yielded %s", original, got)
	}
}

func TestPercentToTimeSnapsToNearestSlot(t *testing.T) {
	// 9:07 rounds down, 9:08 rounds up
	assert.True(t, PercentToTime(TimeToPercent(at(9, 7)), day).Equal(at(9, 0)))
	assert.True(t, PercentToTime(TimeToPercent(at(9, 8)), day).Equal(at(9, 15)))
}

func TestPercentToTimeClampsToDay(t *testing.T) {
	assert.True(t, PercentToTime(-12, day).Equal(at(0, 0)))
	assert.True(t, PercentToTime(150, day).Equal(at(23, 45)))
	assert.True(t, PercentToTime(100, day).Equal(at(23, 45)))
}

func TestPointerYToTime(t *testing.T) {
	// Halfway down a 960px column is noon
	assert.True(t, PointerYToTime(480, 960, day).Equal(at(12, 0)))

	// Offsets outside the column clamp to its edges
	assert.True(t, PointerYToTime(-50, 960, day).Equal(at(0, 0)))
	assert.True(t, PointerYToTime(2000, 960, day).Equal(at(23, 45)))

	// Degenerate container height falls back to midnight
	assert.True(t, PointerYToTime(100, 0, day).Equal(at(0, 0)))
}

func TestDayOfAndSameDay(t *testing.T) {
	assert.True(t, DayOf(at(17, 42)).Equal(day))
	assert.True(t, SameDay(at(0, 0), at(23, 45)))
	assert.False(t, SameDay(at(23, 45), at(23, 45).Add(time.Hour)))
}
