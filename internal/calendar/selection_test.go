package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointerAt positions the pointer at the given hour within a 960px day
// column: 40px per hour.
func pointerAt(hour, min int) Pointer {
	return Pointer{
		Y:               float64(hour*60+min) / (24 * 60) * 960,
		ContainerHeight: 960,
		Day:             day,
	}
}

func TestSelectionCommitWithoutDragEnforcesMinimumDuration(t *testing.T) {
	var s DragSelection
	require.NoError(t, s.Begin(pointerAt(9, 0)))

	r, ok := s.Commit()
	require.True(t, ok)
	assert.True(t, r.Start.Equal(at(9, 0)))
	assert.True(t, r.End.Equal(at(9, 15)))
	assert.False(t, s.Active())
}

func TestSelectionDragDownward(t *testing.T) {
	var s DragSelection
	require.NoError(t, s.Begin(pointerAt(9, 0)))
	s.Update(pointerAt(10, 30))

	r, ok := s.Commit()
	require.True(t, ok)
	assert.True(t, r.Start.Equal(at(9, 0)))
	assert.True(t, r.End.Equal(at(10, 30)))
}

func TestSelectionDragUpwardFlipsRange(t *testing.T) {
	var s DragSelection
	require.NoError(t, s.Begin(pointerAt(14, 0)))
	s.Update(pointerAt(12, 0))

	r, ok := s.Commit()
	require.True(t, ok)
	assert.True(t, r.Start.Equal(at(12, 0)))
	assert.True(t, r.End.Equal(at(14, 0)))
}

func TestSelectionBeginOnAppointmentRejected(t *testing.T) {
	var s DragSelection
	p := pointerAt(9, 0)
	p.OnAppointment = true

	assert.ErrorIs(t, s.Begin(p), ErrPointerOnAppointment)
	assert.False(t, s.Active())
}

func TestSelectionBeginWhileActiveRejected(t *testing.T) {
	var s DragSelection
	require.NoError(t, s.Begin(pointerAt(9, 0)))
	assert.ErrorIs(t, s.Begin(pointerAt(11, 0)), ErrGestureActive)

	// The original gesture is untouched
	r, ok := s.Commit()
	require.True(t, ok)
	assert.True(t, r.Start.Equal(at(9, 0)))
}

func TestSelectionCommitWhenIdleReturnsNothing(t *testing.T) {
	var s DragSelection
	_, ok := s.Commit()
	assert.False(t, ok)
}

func TestSelectionCancelDiscardsState(t *testing.T) {
	var s DragSelection
	require.NoError(t, s.Begin(pointerAt(9, 0)))
	s.Cancel()

	assert.False(t, s.Active())
	_, ok := s.Commit()
	assert.False(t, ok)
}

func TestSelectionUpdateWhenIdleIsNoOp(t *testing.T) {
	var s DragSelection
	s.Update(pointerAt(9, 0))
	assert.False(t, s.Active())
}

func TestSelectionPreviewNormalisesWithoutWidening(t *testing.T) {
	var s DragSelection
	require.NoError(t, s.Begin(pointerAt(9, 0)))
	s.Update(pointerAt(8, 30))

	r, ok := s.Preview()
	require.True(t, ok)
	assert.True(t, r.Start.Equal(at(8, 30)))
	assert.True(t, r.End.Equal(at(9, 0)))
	assert.Equal(t, 30*time.Minute, r.End.Sub(r.Start))
}
