package approval

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"medispa-app-server/internal/models"
)

// Error is a sentinel error raised by the approval workflow.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrCardNotFound is returned for decisions on appointments with no
	// open card, including repeat approvals after the card was settled.
	ErrCardNotFound Error = "no notification awaiting approval for this appointment"

	// ErrNotPending is returned when opening a card for an appointment
	// whose notification is not in the pending state.
	ErrNotPending Error = "notification is not awaiting approval"

	// ErrRegenerating is returned for an approval attempted while a
	// replacement message is still being generated.
	ErrRegenerating Error = "message regeneration in progress"
)

// Update is the decision the workflow emits for the appointment store to
// persist onto the appointment's notification columns.
type Update struct {
	AppointmentID string                    `json:"appointmentId"`
	Status        models.NotificationStatus `json:"status"`
	Sent          bool                      `json:"sent"`
	EditedMessage string                    `json:"editedMessage,omitempty"`
}

// Card is the review surface for one appointment's care-instruction
// message. Built lazily from a pending notification and discarded once the
// appointment leaves the pending state.
type Card struct {
	AppointmentID      string                    `json:"appointmentId"`
	PatientName        string                    `json:"patientName"`
	Kind               models.NotificationKind   `json:"kind"`
	Status             models.NotificationStatus `json:"status"`
	Message            string                    `json:"message"`
	OriginalMessage    string                    `json:"originalMessage"`
	AIGeneratedMessage string                    `json:"aiGeneratedMessage,omitempty"`
	MessageVariant     int                       `json:"messageVariant"`
	ShowAlternative    bool                      `json:"showAlternative"`
	Regenerating       bool                      `json:"regenerating"`
	RegenError         string                    `json:"regenError,omitempty"`

	startTime time.Time
}

// Generator produces a replacement care-instruction message. Injectable so
// tests can force failures and deterministic output.
type Generator func(kind models.NotificationKind, patientName string, attempt int) (string, error)

type cardState struct {
	Card
	cancelRegen context.CancelFunc
	regenSeq    int
	attempts    int
}

// Workflow is the per-appointment notification approval state machine:
// pending -> approved (terminal) or pending -> disapproved -> regenerate
// -> pending. Safe for concurrent use; HTTP handlers, the notification
// sweep job and regeneration goroutines all touch it.
type Workflow struct {
	mu    sync.Mutex
	cards map[string]*cardState
	delay time.Duration
	gen   Generator
	now   func() time.Time
	log   *zap.Logger
}

// NewWorkflow creates a workflow whose regenerations take the given
// simulated delay.
func NewWorkflow(delay time.Duration, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workflow{
		cards: make(map[string]*cardState),
		delay: delay,
		gen:   TemplateGenerator,
		now:   time.Now,
		log:   log,
	}
}

// SetGenerator replaces the message generator.
func (w *Workflow) SetGenerator(gen Generator) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen = gen
}

// SetClock replaces the clock used for pre/post-care selection.
func (w *Workflow) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}

// Open builds (or returns the existing) review card for an appointment
// whose notification awaits approval.
func (w *Workflow) Open(appt models.Appointment) (Card, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if cs, ok := w.cards[appt.ID]; ok {
		return cs.Card, nil
	}
	if appt.Notification.Status != models.NotificationPending {
		return Card{}, ErrNotPending
	}

	kind := appt.Notification.Kind
	if kind == "" {
		kind = kindFor(appt.StartTime, w.now())
	}
	cs := &cardState{Card: Card{
		AppointmentID:   appt.ID,
		PatientName:     appt.Patient.FirstName,
		Kind:            kind,
		Status:          models.NotificationPending,
		Message:         appt.Notification.Message,
		OriginalMessage: appt.Notification.Message,
		startTime:       appt.StartTime,
	}}
	w.cards[appt.ID] = cs
	return cs.Card, nil
}

// Card returns the open card for an appointment, if any.
func (w *Workflow) Card(appointmentID string) (Card, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cs, ok := w.cards[appointmentID]
	if !ok {
		return Card{}, false
	}
	return cs.Card, true
}

// Pending lists every open card.
func (w *Workflow) Pending() []Card {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Card, 0, len(w.cards))
	for _, cs := range w.cards {
		out = append(out, cs.Card)
	}
	return out
}

// Approve settles the card with the final message. The card is removed, so
// a repeat approval fails with ErrCardNotFound. Any outstanding
// regeneration is cancelled and its result dropped.
func (w *Workflow) Approve(appointmentID, finalMessage string) (Update, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cs, ok := w.cards[appointmentID]
	if !ok {
		return Update{}, ErrCardNotFound
	}
	if cs.Regenerating {
		return Update{}, ErrRegenerating
	}
	if finalMessage == "" {
		finalMessage = cs.Message
	}
	w.dropLocked(cs)
	return Update{
		AppointmentID: appointmentID,
		Status:        models.NotificationApproved,
		Sent:          true,
		EditedMessage: finalMessage,
	}, nil
}

// Decline marks the card disapproved and kicks off asynchronous message
// regeneration. The card returns to pending once a replacement message is
// ready; on failure it returns to pending with its previous message and
// RegenError set. Re-declining while a regeneration is outstanding cancels
// the first one.
func (w *Workflow) Decline(appointmentID string) (Update, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cs, ok := w.cards[appointmentID]
	if !ok {
		return Update{}, ErrCardNotFound
	}

	if cs.cancelRegen != nil {
		cs.cancelRegen()
	}
	cs.Status = models.NotificationDisapproved
	cs.Regenerating = true
	cs.RegenError = ""
	cs.Kind = kindFor(cs.startTime, w.now())
	cs.attempts++
	cs.regenSeq++

	ctx, cancel := context.WithCancel(context.Background())
	cs.cancelRegen = cancel
	go w.regenerate(ctx, appointmentID, cs.regenSeq, cs.Kind, cs.PatientName, cs.attempts)

	return Update{
		AppointmentID: appointmentID,
		Status:        models.NotificationDisapproved,
		Sent:          false,
	}, nil
}

// regenerate waits out the simulated generation delay and installs the
// replacement message, unless the card was removed or re-declined in the
// meantime; a stale or cancelled regeneration must not touch card state.
func (w *Workflow) regenerate(ctx context.Context, appointmentID string, seq int, kind models.NotificationKind, patientName string, attempt int) {
	select {
	case <-time.After(w.delay):
	case <-ctx.Done():
		return
	}

	message, err := w.gen(kind, patientName, attempt)

	w.mu.Lock()
	defer w.mu.Unlock()
	cs, ok := w.cards[appointmentID]
	if !ok || cs.regenSeq != seq {
		return
	}
	cs.Regenerating = false
	cs.cancelRegen = nil
	cs.Status = models.NotificationPending
	if err != nil {
		cs.RegenError = err.Error()
		w.log.Warn("message regeneration failed",
			zap.String("appointmentId", appointmentID), zap.Error(err))
		return
	}
	cs.AIGeneratedMessage = message
	cs.Message = message
	cs.MessageVariant = 0
	cs.ShowAlternative = false
	w.log.Info("message regenerated",
		zap.String("appointmentId", appointmentID), zap.String("kind", string(kind)))
}

// CycleVariant rotates the displayed message through the original, the
// AI-generated replacement and the stock alternatives. Display-only;
// nothing persists until Approve.
func (w *Workflow) CycleVariant(appointmentID string) (Card, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cs, ok := w.cards[appointmentID]
	if !ok {
		return Card{}, ErrCardNotFound
	}
	variants := messageVariants(cs.OriginalMessage, cs.AIGeneratedMessage, cs.Kind, cs.PatientName)
	cs.MessageVariant = (cs.MessageVariant + 1) % len(variants)
	cs.Message = variants[cs.MessageVariant]
	cs.ShowAlternative = cs.MessageVariant != 0
	return cs.Card, nil
}

// Remove discards the card, cancelling any outstanding regeneration. Used
// when the appointment is deleted or settled outside the workflow.
func (w *Workflow) Remove(appointmentID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if cs, ok := w.cards[appointmentID]; ok {
		w.dropLocked(cs)
	}
}

func (w *Workflow) dropLocked(cs *cardState) {
	if cs.cancelRegen != nil {
		cs.cancelRegen()
		cs.cancelRegen = nil
	}
	delete(w.cards, cs.AppointmentID)
}

// kindFor picks pre-care for appointments still ahead of now, post-care
// otherwise, evaluated at decision time.
func kindFor(startTime, now time.Time) models.NotificationKind {
	if startTime.After(now) {
		return models.NotificationPreCare
	}
	return models.NotificationPostCare
}
