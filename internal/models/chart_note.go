package models

import (
	"time"
)

// ChartNoteType represents the category of a chart entry
type ChartNoteType string

const (
	ChartNoteTreatment    ChartNoteType = "TreatmentNote"
	ChartNoteConsultation ChartNoteType = "ConsultationNote"
	ChartNoteIntake       ChartNoteType = "IntakeForm"
	ChartNoteConsent      ChartNoteType = "ConsentForm"
	ChartNotePhoto        ChartNoteType = "ProgressPhoto"
)

// ChartNote represents one entry in a patient's chart
type ChartNote struct {
	BaseModel
	PatientID  string        `gorm:"size:36;index" json:"patientId"`
	ProviderID string        `gorm:"size:36;index" json:"providerId"`
	NoteType   ChartNoteType `gorm:"size:50" json:"noteType"`
	NoteDate   time.Time     `json:"date"`
	Title      string        `gorm:"size:255;not null" json:"title"`
	Summary    string        `gorm:"type:text" json:"summary"`
	Details    string        `gorm:"type:text" json:"details"`

	// Relations
	Patient     User                  `gorm:"foreignKey:PatientID" json:"-"`
	Provider    User                  `gorm:"foreignKey:ProviderID" json:"-"`
	Attachments []ChartNoteAttachment `gorm:"foreignKey:ChartNoteID" json:"attachments,omitempty"`
}

// ChartNoteAttachment represents a file attached to a chart note
type ChartNoteAttachment struct {
	BaseModel
	ChartNoteID string `json:"chartNoteId" gorm:"not null;type:varchar(36)"`
	FileName    string `json:"fileName" gorm:"not null"` // Original name of the file
	FileType    string `json:"fileType" gorm:"not null"` // MIME type of the file
	FileData    []byte `json:"-" gorm:"type:longblob;not null"`
}
