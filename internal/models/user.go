package models

import "time"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'patient'" json:"role"`

	// Doctor profile (empty for patients)
	Specialty       string  `gorm:"size:100" json:"specialty,omitempty"`
	Bio             string  `gorm:"size:500" json:"bio,omitempty"`
	ConsultationFee float64 `json:"consultation_fee,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
