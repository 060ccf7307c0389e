package calendar

// GestureError is a sentinel error raised by the drag controllers.
type GestureError string

func (e GestureError) Error() string { return string(e) }

const (
	// ErrGestureActive is returned when a gesture begins while another one
	// is still in flight. At most one gesture may be active per controller.
	ErrGestureActive GestureError = "another gesture is already active"

	// ErrPointerOnAppointment is returned when a drag-to-create begins on
	// top of an existing appointment card.
	ErrPointerOnAppointment GestureError = "selection cannot start on an appointment"

	// ErrInvalidRange is returned when a committed range has its end at or
	// before its start.
	ErrInvalidRange GestureError = "End time must be after start time"
)
