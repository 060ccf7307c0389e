package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medispa-app-server/internal/approval"
	"medispa-app-server/internal/models"
)

// NotificationSweeper periodically opens approval cards for appointments
// that need a care-instruction message: pre-care ahead of upcoming visits,
// post-care after completed ones.
type NotificationSweeper struct {
	DB       *gorm.DB
	Workflow *approval.Workflow
	Log      *zap.Logger
}

// Start schedules the sweep every 15 minutes and runs one sweep
// immediately so restarts don't wait for the next tick.
func (s *NotificationSweeper) Start() *cron.Cron {
	c := cron.New()

	c.AddFunc("*/15 * * * *", func() {
		s.Sweep(time.Now())
	})
	c.Start()

	go s.Sweep(time.Now())
	return c
}

// Sweep queues pending notifications on appointments entering the pre-care
// window (next 24 hours) or just completed (previous 24 hours), then opens
// review cards for everything pending.
func (s *NotificationSweeper) Sweep(now time.Time) {
	if err := s.queuePreCare(now); err != nil {
		s.Log.Error("pre-care sweep failed", zap.Error(err))
	}
	if err := s.queuePostCare(now); err != nil {
		s.Log.Error("post-care sweep failed", zap.Error(err))
	}
	s.openCards()
}

func (s *NotificationSweeper) queuePreCare(now time.Time) error {
	var appointments []models.Appointment
	err := s.DB.Preload("Patient").
		Where("status = ?", models.StatusScheduled).
		Where("start_time > ? AND start_time <= ?", now, now.Add(24*time.Hour)).
		Where("notification_status = ? OR notification_status IS NULL", "").
		Find(&appointments).Error
	if err != nil {
		return err
	}

	for i := range appointments {
		s.queue(&appointments[i], models.NotificationPreCare, 0)
	}
	return nil
}

func (s *NotificationSweeper) queuePostCare(now time.Time) error {
	var appointments []models.Appointment
	err := s.DB.Preload("Patient").
		Where("status = ?", models.StatusCompleted).
		Where("end_time > ? AND end_time <= ?", now.Add(-24*time.Hour), now).
		Where("notification_status = ? OR notification_status IS NULL", "").
		Find(&appointments).Error
	if err != nil {
		return err
	}

	for i := range appointments {
		s.queue(&appointments[i], models.NotificationPostCare, 0)
	}
	return nil
}

func (s *NotificationSweeper) queue(appt *models.Appointment, kind models.NotificationKind, attempt int) {
	message, err := approval.TemplateGenerator(kind, appt.Patient.FirstName, attempt)
	if err != nil {
		s.Log.Error("message generation failed",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}

	appt.Notification = models.Notification{
		Status:  models.NotificationPending,
		Sent:    false,
		Message: message,
		Kind:    kind,
	}
	if err := s.DB.Save(appt).Error; err != nil {
		s.Log.Error("failed to queue notification",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}
	s.Log.Info("notification queued",
		zap.String("appointmentId", appt.ID), zap.String("kind", string(kind)))
}

// openCards builds review cards for every appointment whose notification
// awaits approval, so the approvals list is warm before the first request.
func (s *NotificationSweeper) openCards() {
	var appointments []models.Appointment
	if err := s.DB.Preload("Patient").
		Where("notification_status = ?", models.NotificationPending).
		Find(&appointments).Error; err != nil {
		s.Log.Error("failed to list pending notifications", zap.Error(err))
		return
	}
	for _, appt := range appointments {
		_, _ = s.Workflow.Open(appt)
	}
}
