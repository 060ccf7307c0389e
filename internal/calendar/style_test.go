package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardStyleSingleAppointment(t *testing.T) {
	style := CardStyleFor(appt("a", 9, 0, 10, 0), 0, 1)

	assert.Equal(t, 37.5, style.Top)
	assert.InDelta(t, 4.1667, style.Height, 0.001)
	assert.Equal(t, 95.0, style.Width)
	assert.Equal(t, 2.5, style.Left)
	assert.Equal(t, 1, style.ZIndex)
}

func TestCardStyleOverlappingPair(t *testing.T) {
	a := appt("alice", 9, 0, 9, 30)
	b := appt("bob", 9, 15, 9, 45)

	styleA := CardStyleFor(a, 0, 2)
	styleB := CardStyleFor(b, 1, 2)

	// count=2: width 100/2+10, lefts 0 and 85/2
	assert.Equal(t, 60.0, styleA.Width)
	assert.Equal(t, 0.0, styleA.Left)
	assert.Equal(t, 60.0, styleB.Width)
	assert.Equal(t, 42.5, styleB.Left)

	// Later-starting card draws on top
	assert.Equal(t, 1, styleA.ZIndex)
	assert.Equal(t, 2, styleB.ZIndex)
}

func TestCardStyleIsPure(t *testing.T) {
	a := appt("a", 13, 15, 14, 45)
	first := CardStyleFor(a, 1, 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CardStyleFor(a, 1, 3))
	}
}

func TestCardStyleCrossMidnightYieldsNegativeHeight(t *testing.T) {
	// Documented limitation: cross-midnight ranges are not handled, the
	// raw negative height surfaces to callers.
	a := appt("a", 23, 0, 1, 0)
	style := CardStyleFor(a, 0, 1)
	assert.Less(t, style.Height, 0.0)
}
