package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	DoctorID uint `gorm:"index:idx_appointments_doctor_date" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Date is the calendar day at midnight in the schedule's timezone.
	Date      time.Time `gorm:"index:idx_appointments_doctor_date" json:"date"`
	StartTime string    `gorm:"size:5" json:"start_time"`
	EndTime   string    `gorm:"size:5" json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Reason          string  `gorm:"size:500" json:"reason"`
	Notes           string  `gorm:"size:500" json:"notes"`
	DoctorNotes     string  `gorm:"size:500" json:"doctor_notes"`
	RejectionReason string  `gorm:"size:255" json:"rejection_reason"`
	Fee             float64 `json:"fee"`

	// RequestID deduplicates client retries of the same create call.
	RequestID string `gorm:"size:36;index" json:"request_id,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
