package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragMovePreservesDuration(t *testing.T) {
	var d AppointmentDrag
	original := appt("a", 9, 0, 9, 50)
	require.NoError(t, d.Begin(original))

	d.UpdateOver(pointerAt(14, 0))
	cmd := d.End()

	require.NotNil(t, cmd)
	assert.Equal(t, "a", cmd.AppointmentID)
	assert.True(t, cmd.NewStartTime.Equal(at(14, 0)))
	assert.Equal(t, original.Duration(), cmd.NewEndTime.Sub(cmd.NewStartTime))
	assert.False(t, d.Active())
}

func TestDragMoveAcrossDays(t *testing.T) {
	var d AppointmentDrag
	require.NoError(t, d.Begin(appt("a", 9, 0, 10, 0)))

	nextDay := day.AddDate(0, 0, 1)
	p := pointerAt(11, 0)
	p.Day = nextDay
	preview := d.UpdateOver(p)

	assert.True(t, preview.Visible)
	assert.True(t, preview.Date.Equal(nextDay))

	cmd := d.End()
	require.NotNil(t, cmd)
	assert.True(t, SameDay(cmd.NewStartTime, nextDay))
	assert.Equal(t, time.Hour, cmd.NewEndTime.Sub(cmd.NewStartTime))
}

func TestDragMovePreviewKeepsOriginalHeight(t *testing.T) {
	var d AppointmentDrag
	require.NoError(t, d.Begin(appt("a", 9, 0, 10, 30)))

	preview := d.UpdateOver(pointerAt(13, 0))
	assert.InDelta(t, TimeToPercent(at(10, 30))-TimeToPercent(at(9, 0)), preview.HeightPercent, 0.0001)
	assert.InDelta(t, TimeToPercent(at(13, 0)), preview.TopPercent, 0.0001)
}

func TestDragMoveEndWithoutBeginReturnsNil(t *testing.T) {
	var d AppointmentDrag
	assert.Nil(t, d.End())
}

func TestDragMoveEndWithoutHoverReturnsNil(t *testing.T) {
	var d AppointmentDrag
	require.NoError(t, d.Begin(appt("a", 9, 0, 10, 0)))
	assert.Nil(t, d.End())
	assert.False(t, d.Active())
}

func TestDragMoveSecondBeginRejected(t *testing.T) {
	var d AppointmentDrag
	require.NoError(t, d.Begin(appt("a", 9, 0, 10, 0)))
	assert.ErrorIs(t, d.Begin(appt("b", 11, 0, 12, 0)), ErrGestureActive)

	dragged, ok := d.Dragged()
	require.True(t, ok)
	assert.Equal(t, "a", dragged.ID)
}

func TestDragMoveCancelDropsGesture(t *testing.T) {
	var d AppointmentDrag
	require.NoError(t, d.Begin(appt("a", 9, 0, 10, 0)))
	d.UpdateOver(pointerAt(15, 0))
	d.Cancel()

	assert.Nil(t, d.End())
	assert.False(t, d.Preview().Visible)
}

func TestDragMoveUpdateWhenIdleReturnsEmptyPreview(t *testing.T) {
	var d AppointmentDrag
	preview := d.UpdateOver(pointerAt(9, 0))
	assert.False(t, preview.Visible)
}
