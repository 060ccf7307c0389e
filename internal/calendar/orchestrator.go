package calendar

import (
	"time"

	"go.uber.org/zap"

	"medispa-app-server/internal/models"
)

// ViewMode selects the calendar presentation.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// minCardHeightPercent keeps very short bookings tall enough to tap:
// one grid slot's worth of column height.
const minCardHeightPercent = float64(SlotMinutes) / minutesPerDay * 100

// PositionedAppointment pairs an appointment with its computed card
// rectangle and its place within its overlap group.
type PositionedAppointment struct {
	Appointment models.Appointment `json:"appointment"`
	Style       CardStyle          `json:"style"`
	GroupIndex  int                `json:"groupIndex"`
	GroupSize   int                `json:"groupSize"`
}

// Listener receives the high-level events the scheduler emits. Nil
// callbacks are skipped. This replaces the reactive re-render plumbing of
// the dashboard UI with explicit change notification.
type Listener struct {
	OnCreateRequested    func(TimeRange)
	OnMoveRequested      func(MoveCommand)
	OnAppointmentClicked func(models.Appointment)
}

// Orchestrator owns the scheduler's transient interaction state: the
// current view, the drag-to-create selection and the drag-to-move gesture.
// It routes pointer events to whichever controller owns the gesture and is
// the only component aware of view modes. It reads appointment lists and
// proposes changes through Listener; it never mutates the store.
type Orchestrator struct {
	mode      ViewMode
	reference time.Time
	listener  Listener
	log       *zap.Logger

	selection DragSelection
	drag      AppointmentDrag
	dragMoved bool
}

// NewOrchestrator creates a scheduler for the given view and reference date.
func NewOrchestrator(mode ViewMode, reference time.Time, listener Listener, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		mode:      mode,
		reference: DayOf(reference),
		listener:  listener,
		log:       log,
	}
}

// SetView switches the presentation. In-flight gestures are cancelled since
// their day columns no longer exist.
func (o *Orchestrator) SetView(mode ViewMode, reference time.Time) {
	o.selection.Cancel()
	o.drag.Cancel()
	o.mode = mode
	o.reference = DayOf(reference)
}

// View returns the current mode and reference date.
func (o *Orchestrator) View() (ViewMode, time.Time) {
	return o.mode, o.reference
}

// VisibleDays computes the calendar days the current view shows: the
// reference day, its Sunday-to-Saturday week, or every day of its month.
func (o *Orchestrator) VisibleDays() []time.Time {
	switch o.mode {
	case ViewWeek:
		sunday := o.reference.AddDate(0, 0, -int(o.reference.Weekday()))
		days := make([]time.Time, 7)
		for i := range days {
			days[i] = sunday.AddDate(0, 0, i)
		}
		return days
	case ViewMonth:
		first := time.Date(o.reference.Year(), o.reference.Month(), 1, 0, 0, 0, 0, o.reference.Location())
		daysInMonth := first.AddDate(0, 1, -1).Day()
		days := make([]time.Time, daysInMonth)
		for i := range days {
			days[i] = first.AddDate(0, 0, i)
		}
		return days
	default:
		return []time.Time{o.reference}
	}
}

// FilterDay returns the appointments whose start falls on the given day,
// preserving input order.
func FilterDay(appointments []models.Appointment, day time.Time) []models.Appointment {
	var out []models.Appointment
	for _, a := range appointments {
		if SameDay(a.StartTime, day) {
			out = append(out, a)
		}
	}
	return out
}

// BuildDayLayout packs one day's appointments into overlap groups and
// positions every card, applying the minimum-height floor.
func BuildDayLayout(appointments []models.Appointment) []PositionedAppointment {
	groups := Pack(appointments)
	var cards []PositionedAppointment
	for _, group := range groups {
		for i, appt := range group {
			style := CardStyleFor(appt, i, len(group))
			if style.Height < minCardHeightPercent {
				style.Height = minCardHeightPercent
			}
			cards = append(cards, PositionedAppointment{
				Appointment: appt,
				Style:       style,
				GroupIndex:  i,
				GroupSize:   len(group),
			})
		}
	}
	return cards
}

// Layout builds the card layout for every visible day of the current view.
// Keys are midnight timestamps of each day.
func (o *Orchestrator) Layout(appointments []models.Appointment) map[time.Time][]PositionedAppointment {
	out := make(map[time.Time][]PositionedAppointment)
	for _, day := range o.VisibleDays() {
		out[day] = BuildDayLayout(FilterDay(appointments, day))
	}
	return out
}

// ProviderColumns builds per-provider card layouts for a single day; the
// day view renders one column per provider side by side.
func ProviderColumns(appointments []models.Appointment, day time.Time, providerIDs []string) map[string][]PositionedAppointment {
	dayAppts := FilterDay(appointments, day)
	out := make(map[string][]PositionedAppointment, len(providerIDs))
	for _, pid := range providerIDs {
		var column []models.Appointment
		for _, a := range dayAppts {
			if a.ProviderID == pid {
				column = append(column, a)
			}
		}
		out[pid] = BuildDayLayout(column)
	}
	return out
}

// PointerDown begins a gesture: a drag-to-move when the pointer lands on an
// appointment card, otherwise a drag-to-create selection.
func (o *Orchestrator) PointerDown(p Pointer, target *models.Appointment) {
	if target != nil {
		if err := o.drag.Begin(*target); err != nil {
			o.log.Debug("drag rejected", zap.String("appointmentId", target.ID), zap.Error(err))
			return
		}
		o.dragMoved = false
		return
	}
	if err := o.selection.Begin(p); err != nil {
		o.log.Debug("selection rejected", zap.Error(err))
	}
}

// PointerMove advances whichever gesture is in flight.
func (o *Orchestrator) PointerMove(p Pointer) {
	if o.drag.Active() {
		o.drag.UpdateOver(p)
		o.dragMoved = true
		return
	}
	o.selection.Update(p)
}

// PointerUp finishes the gesture in flight. A drag that never moved is a
// plain click on the card; a selection commit proposes a new booking.
func (o *Orchestrator) PointerUp(p Pointer) {
	if o.drag.Active() {
		if !o.dragMoved {
			appt, _ := o.drag.Dragged()
			o.drag.Cancel()
			if o.listener.OnAppointmentClicked != nil {
				o.listener.OnAppointmentClicked(appt)
			}
			return
		}
		if cmd := o.drag.End(); cmd != nil {
			o.log.Debug("move requested",
				zap.String("appointmentId", cmd.AppointmentID),
				zap.Time("newStartTime", cmd.NewStartTime))
			if o.listener.OnMoveRequested != nil {
				o.listener.OnMoveRequested(*cmd)
			}
		}
		return
	}

	o.selection.Update(p)
	if r, ok := o.selection.Commit(); ok {
		o.log.Debug("create requested", zap.Time("startTime", r.Start), zap.Time("endTime", r.End))
		if o.listener.OnCreateRequested != nil {
			o.listener.OnCreateRequested(r)
		}
	}
}

// PointerLeave cancels any gesture in flight. Leaving the surface without
// releasing the pointer must never commit a change.
func (o *Orchestrator) PointerLeave() {
	o.selection.Cancel()
	o.drag.Cancel()
	o.dragMoved = false
}

// SelectionPreview exposes the live drag-to-create range for rendering.
func (o *Orchestrator) SelectionPreview() (TimeRange, bool) {
	return o.selection.Preview()
}

// DropPreview exposes the live drag-to-move indicator for rendering.
func (o *Orchestrator) DropPreview() DropPreview {
	return o.drag.Preview()
}
