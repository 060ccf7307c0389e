package calendar

import (
	"time"
)

// TimeRange is a half-open [Start, End) slice of a day.
type TimeRange struct {
	Start time.Time `json:"startTime"`
	End   time.Time `json:"endTime"`
}

// Pointer describes where a pointer event landed: its vertical offset
// within a day column, the column's pixel height, and the calendar day the
// column represents. OnAppointment is set by the view when the event target
// was an existing card; the controller itself knows nothing about the DOM.
type Pointer struct {
	Y               float64
	ContainerHeight float64
	Day             time.Time
	OnAppointment   bool
}

// DragSelection drives the click-drag-to-create gesture. All state is
// transient per gesture; nothing persists past Commit or Cancel.
//
// Not safe for concurrent use; pointer events arrive on a single event
// loop by contract.
type DragSelection struct {
	start  time.Time
	end    time.Time
	active bool
}

// Begin starts a new selection at the pointer position. Starting on top of
// an existing appointment or while a selection is in flight is rejected.
func (s *DragSelection) Begin(p Pointer) error {
	if p.OnAppointment {
		return ErrPointerOnAppointment
	}
	if s.active {
		return ErrGestureActive
	}
	s.start = PointerYToTime(p.Y, p.ContainerHeight, p.Day)
	s.end = s.start.Add(MinSlotDuration)
	s.active = true
	return nil
}

// Update moves the free end of the selection. No-op while idle.
func (s *DragSelection) Update(p Pointer) {
	if !s.active {
		return
	}
	s.end = PointerYToTime(p.Y, p.ContainerHeight, p.Day)
}

// Commit finalises the gesture and returns the selected range, normalised
// so Start <= End and at least one slot wide. Dragging upward past the
// anchor simply flips the range. Returns ok=false when no gesture is
// active; callers treat that as "nothing to do".
func (s *DragSelection) Commit() (TimeRange, bool) {
	if !s.active {
		return TimeRange{}, false
	}
	start, end := s.start, s.end
	if end.Before(start) {
		start, end = end, start
	}
	if end.Sub(start) < MinSlotDuration {
		end = start.Add(MinSlotDuration)
	}
	s.reset()
	return TimeRange{Start: start, End: end}, true
}

// Cancel discards the in-flight selection.
func (s *DragSelection) Cancel() {
	s.reset()
}

// Active reports whether a selection gesture is in flight.
func (s *DragSelection) Active() bool {
	return s.active
}

// Preview returns the live range while a gesture is in flight, without the
// commit-time normalisation, for rendering the rubber band.
func (s *DragSelection) Preview() (TimeRange, bool) {
	if !s.active {
		return TimeRange{}, false
	}
	start, end := s.start, s.end
	if end.Before(start) {
		start, end = end, start
	}
	return TimeRange{Start: start, End: end}, true
}

func (s *DragSelection) reset() {
	s.start = time.Time{}
	s.end = time.Time{}
	s.active = false
}
