package calendar

import (
	"time"

	"medispa-app-server/internal/models"
)

// MoveCommand is the proposed time shift emitted when a drag-to-move
// gesture is released. The appointment itself is never mutated here; the
// owning store validates and applies the command.
type MoveCommand struct {
	AppointmentID string    `json:"appointmentId"`
	NewStartTime  time.Time `json:"newStartTime"`
	NewEndTime    time.Time `json:"newEndTime"`
}

// DropPreview is the live indicator rectangle shown while an appointment
// is being carried over the grid.
type DropPreview struct {
	Date          time.Time `json:"date"`
	TopPercent    float64   `json:"topPercent"`
	HeightPercent float64   `json:"heightPercent"`
	Visible       bool      `json:"visible"`
}

// AppointmentDrag drives the pick-up-and-move gesture for an existing
// appointment. Like DragSelection it holds only transient per-gesture
// state and is single-event-loop by contract.
type AppointmentDrag struct {
	appt      models.Appointment
	candidate time.Time
	preview   DropPreview
	active    bool
}

// Begin records the appointment being carried. A second Begin while a drag
// is in flight is rejected rather than corrupting the first gesture.
func (d *AppointmentDrag) Begin(appt models.Appointment) error {
	if d.active {
		return ErrGestureActive
	}
	d.appt = appt
	d.candidate = time.Time{}
	d.preview = DropPreview{}
	d.active = true
	return nil
}

// UpdateOver recomputes the candidate start time and drop preview for the
// pointer's current position over the given day column. The preview keeps
// the appointment's original height.
func (d *AppointmentDrag) UpdateOver(p Pointer) DropPreview {
	if !d.active {
		return DropPreview{}
	}
	d.candidate = PointerYToTime(p.Y, p.ContainerHeight, p.Day)
	d.preview = DropPreview{
		Date:          DayOf(p.Day),
		TopPercent:    TimeToPercent(d.candidate),
		HeightPercent: TimeToPercent(d.appt.EndTime) - TimeToPercent(d.appt.StartTime),
		Visible:       true,
	}
	return d.preview
}

// End releases the gesture. When a candidate slot was hovered it returns a
// MoveCommand that preserves the appointment's original duration; nil when
// nothing was dragged or the pointer never produced a candidate.
func (d *AppointmentDrag) End() *MoveCommand {
	if !d.active {
		return nil
	}
	appt, candidate := d.appt, d.candidate
	d.reset()
	if candidate.IsZero() {
		return nil
	}
	return &MoveCommand{
		AppointmentID: appt.ID,
		NewStartTime:  candidate,
		NewEndTime:    candidate.Add(appt.Duration()),
	}
}

// Cancel drops the gesture without emitting a command. Wired to
// pointer-leave: abandoning the surface must never commit a move.
func (d *AppointmentDrag) Cancel() {
	d.reset()
}

// Active reports whether an appointment is currently being carried.
func (d *AppointmentDrag) Active() bool {
	return d.active
}

// Dragged returns the appointment being carried, if any.
func (d *AppointmentDrag) Dragged() (models.Appointment, bool) {
	if !d.active {
		return models.Appointment{}, false
	}
	return d.appt, true
}

// Preview returns the last computed drop preview.
func (d *AppointmentDrag) Preview() DropPreview {
	return d.preview
}

func (d *AppointmentDrag) reset() {
	d.appt = models.Appointment{}
	d.candidate = time.Time{}
	d.preview = DropPreview{}
	d.active = false
}
