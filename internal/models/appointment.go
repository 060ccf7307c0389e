package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusPending   AppointmentStatus = "pending"
)

// AppointmentType drives card colouring in the scheduler only
type AppointmentType string

const (
	TypeTherapy      AppointmentType = "therapy"
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "followup"
	TypeGeneral      AppointmentType = "general"
)

// NotificationStatus represents the approval state of a care-instruction message
type NotificationStatus string

const (
	NotificationPending     NotificationStatus = "pending"
	NotificationApproved    NotificationStatus = "approved"
	NotificationDisapproved NotificationStatus = "disapproved"
)

// NotificationKind distinguishes messages sent before vs after the visit
type NotificationKind string

const (
	NotificationPreCare  NotificationKind = "pre-care"
	NotificationPostCare NotificationKind = "post-care"
)

// Notification holds the care-instruction message attached to an appointment.
// Embedded in Appointment so the approval decision persists with the booking.
type Notification struct {
	Status        NotificationStatus `gorm:"column:notification_status;size:20" json:"status,omitempty"`
	Sent          bool               `gorm:"column:notification_sent;default:false" json:"sent"`
	Message       string             `gorm:"column:notification_message;type:text" json:"message,omitempty"`
	Kind          NotificationKind   `gorm:"column:notification_kind;size:20" json:"type,omitempty"`
	EditedMessage string             `gorm:"column:notification_edited_message;type:text" json:"editedMessage,omitempty"`
}

// Appointment represents a booked treatment slot on the spa calendar.
// Invariant: StartTime < EndTime; zero-length ranges are widened to the
// minimum slot duration when a booking is committed.
type Appointment struct {
	BaseModel
	PatientID  string            `gorm:"size:36;index" json:"patientId"`
	ProviderID string            `gorm:"size:36;index" json:"providerId"`
	ChartID    string            `gorm:"size:36;index" json:"chartId,omitempty"`
	StartTime  time.Time         `gorm:"index" json:"startTime"`
	EndTime    time.Time         `json:"endTime"`
	Status     AppointmentStatus `gorm:"size:20;default:'scheduled'" json:"status"`
	Type       AppointmentType   `gorm:"size:20;default:'general'" json:"type"`
	Notes      string            `gorm:"type:text" json:"notes"`

	Notification Notification `gorm:"embedded" json:"notificationStatus,omitempty"`

	// Relations
	Patient  User `gorm:"foreignKey:PatientID" json:"-"`
	Provider User `gorm:"foreignKey:ProviderID" json:"-"`
}

// Duration returns the booked length of the appointment.
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}
