package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medispa-app-server/internal/models"
)

func TestVisibleDaysDayView(t *testing.T) {
	o := NewOrchestrator(ViewDay, at(15, 30), Listener{}, nil)
	days := o.VisibleDays()
	require.Len(t, days, 1)
	assert.True(t, days[0].Equal(day))
}

func TestVisibleDaysWeekView(t *testing.T) {
	// 2025-03-10 is a Monday; its week runs Sunday 9th through Saturday 15th
	o := NewOrchestrator(ViewWeek, day, Listener{}, nil)
	days := o.VisibleDays()
	require.Len(t, days, 7)
	assert.Equal(t, time.Sunday, days[0].Weekday())
	assert.Equal(t, 9, days[0].Day())
	assert.Equal(t, 15, days[6].Day())
}

func TestVisibleDaysMonthView(t *testing.T) {
	o := NewOrchestrator(ViewMonth, day, Listener{}, nil)
	days := o.VisibleDays()
	require.Len(t, days, 31) // March
	assert.Equal(t, 1, days[0].Day())
	assert.Equal(t, 31, days[30].Day())
}

func TestFilterDay(t *testing.T) {
	tomorrow := appt("tomorrow", 9, 0, 10, 0)
	tomorrow.StartTime = tomorrow.StartTime.AddDate(0, 0, 1)
	tomorrow.EndTime = tomorrow.EndTime.AddDate(0, 0, 1)

	filtered := FilterDay([]models.Appointment{
		appt("today", 9, 0, 10, 0),
		tomorrow,
	}, day)

	require.Len(t, filtered, 1)
	assert.Equal(t, "today", filtered[0].ID)
}

func TestBuildDayLayoutPositionsOverlapGroup(t *testing.T) {
	cards := BuildDayLayout([]models.Appointment{
		appt("alice", 9, 0, 9, 30),
		appt("bob", 9, 15, 9, 45),
	})

	require.Len(t, cards, 2)
	assert.Equal(t, "alice", cards[0].Appointment.ID)
	assert.Equal(t, 0, cards[0].GroupIndex)
	assert.Equal(t, 2, cards[0].GroupSize)
	assert.Equal(t, 60.0, cards[0].Style.Width)
	assert.Equal(t, 0.0, cards[0].Style.Left)

	assert.Equal(t, "bob", cards[1].Appointment.ID)
	assert.Equal(t, 1, cards[1].GroupIndex)
	assert.Equal(t, 42.5, cards[1].Style.Left)
}

func TestBuildDayLayoutAppliesMinimumHeight(t *testing.T) {
	cards := BuildDayLayout([]models.Appointment{appt("short", 9, 0, 9, 5)})
	require.Len(t, cards, 1)
	assert.InDelta(t, minCardHeightPercent, cards[0].Style.Height, 0.0001)
}

func TestProviderColumnsSplitByProvider(t *testing.T) {
	a := appt("a", 9, 0, 10, 0)
	a.ProviderID = "p1"
	b := appt("b", 9, 30, 10, 30)
	b.ProviderID = "p2"

	columns := ProviderColumns([]models.Appointment{a, b}, day, []string{"p1", "p2"})

	require.Len(t, columns["p1"], 1)
	require.Len(t, columns["p2"], 1)
	// No cross-provider overlap: each card gets the full column
	assert.Equal(t, 95.0, columns["p1"][0].Style.Width)
	assert.Equal(t, 95.0, columns["p2"][0].Style.Width)
}

func TestPointerFlowCreateGesture(t *testing.T) {
	var created []TimeRange
	o := NewOrchestrator(ViewDay, day, Listener{
		OnCreateRequested: func(r TimeRange) { created = append(created, r) },
	}, nil)

	o.PointerDown(pointerAt(9, 0), nil)
	o.PointerMove(pointerAt(10, 0))
	o.PointerUp(pointerAt(10, 0))

	require.Len(t, created, 1)
	assert.True(t, created[0].Start.Equal(at(9, 0)))
	assert.True(t, created[0].End.Equal(at(10, 0)))
}

func TestPointerFlowMoveGesture(t *testing.T) {
	var moves []MoveCommand
	o := NewOrchestrator(ViewDay, day, Listener{
		OnMoveRequested: func(cmd MoveCommand) { moves = append(moves, cmd) },
	}, nil)

	target := appt("a", 9, 0, 9, 45)
	o.PointerDown(pointerAt(9, 10), &target)
	o.PointerMove(pointerAt(13, 0))
	o.PointerUp(pointerAt(13, 0))

	require.Len(t, moves, 1)
	assert.Equal(t, "a", moves[0].AppointmentID)
	assert.True(t, moves[0].NewStartTime.Equal(at(13, 0)))
	assert.Equal(t, 45*time.Minute, moves[0].NewEndTime.Sub(moves[0].NewStartTime))
}

func TestPointerFlowClickOnAppointment(t *testing.T) {
	var clicked []models.Appointment
	var moves []MoveCommand
	o := NewOrchestrator(ViewDay, day, Listener{
		OnAppointmentClicked: func(a models.Appointment) { clicked = append(clicked, a) },
		OnMoveRequested:      func(cmd MoveCommand) { moves = append(moves, cmd) },
	}, nil)

	target := appt("a", 9, 0, 9, 45)
	o.PointerDown(pointerAt(9, 10), &target)
	o.PointerUp(pointerAt(9, 10))

	require.Len(t, clicked, 1)
	assert.Equal(t, "a", clicked[0].ID)
	assert.Empty(t, moves)
}

func TestPointerLeaveCancelsGesture(t *testing.T) {
	var created []TimeRange
	o := NewOrchestrator(ViewDay, day, Listener{
		OnCreateRequested: func(r TimeRange) { created = append(created, r) },
	}, nil)

	o.PointerDown(pointerAt(9, 0), nil)
	o.PointerMove(pointerAt(10, 0))
	o.PointerLeave()
	o.PointerUp(pointerAt(10, 0))

	assert.Empty(t, created)
}

func TestSetViewCancelsInFlightGesture(t *testing.T) {
	var created []TimeRange
	o := NewOrchestrator(ViewDay, day, Listener{
		OnCreateRequested: func(r TimeRange) { created = append(created, r) },
	}, nil)

	o.PointerDown(pointerAt(9, 0), nil)
	o.SetView(ViewWeek, day)
	o.PointerUp(pointerAt(10, 0))

	assert.Empty(t, created)
	mode, ref := o.View()
	assert.Equal(t, ViewWeek, mode)
	assert.True(t, ref.Equal(day))
}

func TestLayoutCoversAllVisibleDays(t *testing.T) {
	o := NewOrchestrator(ViewWeek, day, Listener{}, nil)
	layout := o.Layout([]models.Appointment{appt("a", 9, 0, 10, 0)})

	require.Len(t, layout, 7)
	assert.Len(t, layout[day], 1)
}
