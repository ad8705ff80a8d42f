package dto

import "time"

// UserSnapshot is the public profile slice attached to appointment
// listings (doctor seen by patient, patient seen by doctor).
type UserSnapshot struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone,omitempty"`
	Specialty string  `json:"specialty,omitempty"`
	Fee       float64 `json:"consultation_fee,omitempty"`
}

type AppointmentView struct {
	ID        uint      `json:"id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`

	Reason          string  `json:"reason"`
	Notes           string  `json:"notes,omitempty"`
	DoctorNotes     string  `json:"doctor_notes,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	Fee             float64 `json:"fee"`

	Doctor  *UserSnapshot `json:"doctor,omitempty"`
	Patient *UserSnapshot `json:"patient,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
