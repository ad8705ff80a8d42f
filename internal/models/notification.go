package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID        uint  `gorm:"index" json:"user_id"`
	AppointmentID *uint `json:"appointment_id"`

	Type    string `gorm:"size:50;not null" json:"type"`
	Title   string `gorm:"size:100" json:"title"`
	Message string `gorm:"size:500" json:"message"`
	Read    bool   `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
