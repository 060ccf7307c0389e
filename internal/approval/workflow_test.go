package approval

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medispa-app-server/internal/models"
)

func pendingAppointment(id string, start time.Time) models.Appointment {
	a := models.Appointment{
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Notification: models.Notification{
			Status:  models.NotificationPending,
			Message: "original care instructions",
		},
	}
	a.ID = id
	a.Patient.FirstName = "Alice"
	return a
}

func newTestWorkflow(t *testing.T) *Workflow {
	t.Helper()
	return NewWorkflow(5*time.Millisecond, nil)
}

func TestOpenBuildsCardFromPendingNotification(t *testing.T) {
	w := newTestWorkflow(t)
	card, err := w.Open(pendingAppointment("a1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, "a1", card.AppointmentID)
	assert.Equal(t, "original care instructions", card.Message)
	assert.Equal(t, "original care instructions", card.OriginalMessage)
	assert.Equal(t, models.NotificationPending, card.Status)
}

func TestOpenRejectsNonPendingNotification(t *testing.T) {
	w := newTestWorkflow(t)
	appt := pendingAppointment("a1", time.Now())
	appt.Notification.Status = models.NotificationApproved

	_, err := w.Open(appt)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestOpenIsIdempotent(t *testing.T) {
	w := newTestWorkflow(t)
	appt := pendingAppointment("a1", time.Now().Add(time.Hour))

	first, err := w.Open(appt)
	require.NoError(t, err)
	_, err = w.CycleVariant("a1")
	require.NoError(t, err)

	again, err := w.Open(appt)
	require.NoError(t, err)
	// The existing card wins; re-opening does not reset the variant
	assert.NotEqual(t, first.MessageVariant, again.MessageVariant)
}

func TestKindSelectionFromStartTime(t *testing.T) {
	w := newTestWorkflow(t)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	w.SetClock(func() time.Time { return now })

	future, err := w.Open(pendingAppointment("future", now.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, models.NotificationPreCare, future.Kind)

	past, err := w.Open(pendingAppointment("past", now.Add(-2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, models.NotificationPostCare, past.Kind)
}

func TestApproveSettlesCard(t *testing.T) {
	w := newTestWorkflow(t)
	_, err := w.Open(pendingAppointment("a1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	update, err := w.Approve("a1", "final edited message")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationApproved, update.Status)
	assert.True(t, update.Sent)
	assert.Equal(t, "final edited message", update.EditedMessage)

	// The card is gone; approving again is rejected
	_, err = w.Approve("a1", "again")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestApproveWithEmptyMessageUsesCurrent(t *testing.T) {
	w := newTestWorkflow(t)
	_, err := w.Open(pendingAppointment("a1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	update, err := w.Approve("a1", "")
	require.NoError(t, err)
	assert.Equal(t, "original care instructions", update.EditedMessage)
}

func TestDeclineRegeneratesAndReturnsToPending(t *testing.T) {
	w := newTestWorkflow(t)
	w.SetGenerator(func(kind models.NotificationKind, patientName string, attempt int) (string, error) {
		return "regenerated for " + patientName, nil
	})
	_, err := w.Open(pendingAppointment("a1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	update, err := w.Decline("a1")
	require.NoError(t, err)
	assert.Equal(t, models.NotificationDisapproved, update.Status)
	assert.False(t, update.Sent)

	card, ok := w.Card("a1")
	require.True(t, ok)
	assert.True(t, card.Regenerating)

	require.Eventually(t, func() bool {
		card, ok := w.Card("a1")
		return ok && !card.Regenerating
	}, time.Second, time.Millisecond)

	card, _ = w.Card("a1")
	assert.Equal(t, models.NotificationPending, card.Status)
	assert.Equal(t, "regenerated for Alice", card.Message)
	assert.Equal(t, "regenerated for Alice", card.AIGeneratedMessage)
	assert.Empty(t, card.RegenError)
}

func TestApproveWhileRegeneratingRejected(t *testing.T) {
	w := NewWorkflow(time.Hour, nil) // regeneration never finishes in-test
	_, err := w.Open(pendingAppointment("a1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = w.Decline("a1")
	require.NoError(t, err)

	_, err = w.Approve("a1", "too soon")
	assert.ErrorIs(t, err, ErrRegenerating)
}

func TestRemoveCancelsOutstandingRegeneration(t *testing.T) {
	w := newTestWorkflow(t)
	generated := make(chan struct{}, 1)
	w.SetGenerator(func(kind models.NotificationKind, patientName string, attempt int) (string, error) {
		generated <- struct{}{}
		return "late message", nil
	})
	_, err := w.Open(pendingAppointment("a1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = w.Decline("a1")
	require.NoError(t, err)
	w.Remove("a1")

	// The cancelled regeneration must not resurrect the card
	select {
	case <-generated:
	case <-time.After(100 * time.Millisecond):
	}
	time.Sleep(20 * time.Millisecond)
	_, ok := w.Card("a1")
	assert.False(t, ok)
}

func TestRedeclineDropsStaleRegeneration(t *testing.T) {
	w := newTestWorkflow(t)
	w.SetGenerator(func(kind models.NotificationKind, patientName string, attempt int) (string, error) {
		if attempt == 1 {
			return "first attempt", nil
		}
		return "second attempt", nil
	})
	_, err := w.Open(pendingAppointment("a1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = w.Decline("a1")
	require.NoError(t, err)
	_, err = w.Decline("a1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		card, ok := w.Card("a1")
		return ok && !card.Regenerating
	}, time.Second, time.Millisecond)

	card, _ := w.Card("a1")
	assert.Equal(t, "second attempt", card.Message)
}

func TestRegenerationFailureKeepsPreviousMessage(t *testing.T) {
	w := newTestWorkflow(t)
	w.SetGenerator(func(kind models.NotificationKind, patientName string, attempt int) (string, error) {
		return "", errors.New("generation backend unavailable")
	})
	_, err := w.Open(pendingAppointment("a1", time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = w.Decline("a1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		card, ok := w.Card("a1")
		return ok && !card.Regenerating
	}, time.Second, time.Millisecond)

	card, _ := w.Card("a1")
	// Recoverable: back to pending with the old message and an error flag
	assert.Equal(t, models.NotificationPending, card.Status)
	assert.Equal(t, "original care instructions", card.Message)
	assert.Equal(t, "generation backend unavailable", card.RegenError)
}

func TestCycleVariantRotatesAndWraps(t *testing.T) {
	w := newTestWorkflow(t)
	appt := pendingAppointment("a1", time.Now().Add(time.Hour))
	first, err := w.Open(appt)
	require.NoError(t, err)

	seen := map[string]bool{first.Message: true}
	var card Card
	for {
		card, err = w.CycleVariant("a1")
		require.NoError(t, err)
		if card.MessageVariant == 0 {
			break
		}
		assert.True(t, card.ShowAlternative)
		assert.False(t, seen[card.Message], "variant repeated before wrapping")
		seen[card.Message] = true
	}

	// Wrapped back to the original
	assert.Equal(t, first.Message, card.Message)
	assert.False(t, card.ShowAlternative)
}

func TestCycleVariantUnknownCard(t *testing.T) {
	w := newTestWorkflow(t)
	_, err := w.CycleVariant("missing")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestDecisionsOnUnknownCardRejected(t *testing.T) {
	w := newTestWorkflow(t)
	_, err := w.Approve("missing", "msg")
	assert.ErrorIs(t, err, ErrCardNotFound)
	_, err = w.Decline("missing")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestTemplateGeneratorVariesByAttempt(t *testing.T) {
	first, err := TemplateGenerator(models.NotificationPreCare, "Alice", 0)
	require.NoError(t, err)
	second, err := TemplateGenerator(models.NotificationPreCare, "Alice", 1)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Unknown patient names get a generic greeting
	generic, err := TemplateGenerator(models.NotificationPostCare, "", 0)
	require.NoError(t, err)
	assert.Contains(t, generic, "Hi there")
}
