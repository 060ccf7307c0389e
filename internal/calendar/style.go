package calendar

import (
	"medispa-app-server/internal/models"
)

// CardStyle is the rectangle a scheduler card occupies inside its day
// column. Top, Height, Width and Left are percentages of the column;
// ZIndex orders stacked cards.
type CardStyle struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Left   float64 `json:"left"`
	ZIndex int     `json:"zIndex"`
}

// CardStyleFor computes the rectangle for an appointment given its position
// within its overlap group and the group's size. Pure: identical inputs
// always yield identical output.
//
// Widths for grouped cards intentionally sum past 100% so overlapping
// bookings cascade over one another instead of shrinking to slivers; the
// later-starting card draws on top via ZIndex. Cross-midnight appointments
// are not supported and produce a negative height; callers clamp.
func CardStyleFor(appt models.Appointment, index, count int) CardStyle {
	top := TimeToPercent(appt.StartTime)
	height := TimeToPercent(appt.EndTime) - top

	width := 95.0
	left := 2.5
	if count > 1 {
		width = 100.0/float64(count) + 10.0
		left = 85.0 / float64(count) * float64(index)
	}

	return CardStyle{
		Top:    top,
		Height: height,
		Width:  width,
		Left:   left,
		ZIndex: index + 1,
	}
}
